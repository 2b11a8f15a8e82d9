// Package fileutil collects the source files handed to the extraction core.
// It produces the file set; candidate discovery itself never touches the
// filesystem beyond reading the files selected here.
package fileutil
