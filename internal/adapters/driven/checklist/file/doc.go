// Package file loads the checklist template from a user-editable TOML file.
//
// The default template is embedded in the binary and written to disk the first
// time the template is loaded, so users have a file to edit.
package file
