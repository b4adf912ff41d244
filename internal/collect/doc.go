// Package collect walks scan roots and yields candidate file paths.
package collect
