package assets

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed styles/*
var styles embed.FS

//go:embed templates/*
var templates embed.FS

// DefaultTemplate is the name of the built-in page template.
const DefaultTemplate = "page"

// LoadStyle returns the embedded stylesheet with the given name, without
// the .css extension.
func LoadStyle(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// MustStyle is LoadStyle for names known to be embedded. It panics on a
// missing style.
func MustStyle(name string) string {
	css, err := LoadStyle(name)
	if err != nil {
		panic(err)
	}
	return css
}

// LoadTemplate returns the embedded template with the given name and file
// extension (".html" or ".tex").
func LoadTemplate(name, ext string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	if ext != ".html" && ext != ".tex" {
		return "", fmt.Errorf("%w: %q with extension %q", ErrTemplateNotFound, name, ext)
	}
	content, err := templates.ReadFile("templates/" + name + ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name+ext)
	}
	return string(content), nil
}

// validateName rejects empty names and names that could escape the asset
// directory or change the extension.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
