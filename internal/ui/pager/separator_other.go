//go:build !windows

package pager

// LineSeparator delimits lines in displayed content.
const LineSeparator = "\n"
