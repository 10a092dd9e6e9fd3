// Package configs provides the embedded configuration template.
//
// The template is embedded at build time with go:embed so it ships
// inside the binary and stays editable in the repo. The init command
// writes it to .mba-setup.yaml in the working directory.
package configs

import _ "embed"

// ConfigTemplate is the annotated .mba-setup.yaml template. Its values
// mirror the course defaults, so an untouched copy changes nothing.
//
//go:embed config.example.yaml
var ConfigTemplate string
