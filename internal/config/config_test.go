package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func entries(s Section) string {
	parts := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		parts = append(parts, e.Key+"="+e.Value)
	}
	return strings.Join(parts, ";")
}

func TestLoad_INIKeepsOrder(t *testing.T) {
	path := writeFile(t, "core", `
[pacman]
zsh = zsh zsh-completions
base = base-devel git
Editors = neovim

[aur]
browser = google-chrome

[service]
network = NetworkManager

[script]
shell = $ chsh -s /bin/zsh # keep comment
`)

	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := entries(file.Section(SectionPacman)); got != "zsh=zsh zsh-completions;base=base-devel git;editors=neovim" {
		t.Errorf("Unexpected pacman entries: %s", got)
	}
	if got := entries(file.Section(SectionAUR)); got != "browser=google-chrome" {
		t.Errorf("Unexpected aur entries: %s", got)
	}
	if got := entries(file.Section(SectionService)); got != "network=NetworkManager" {
		t.Errorf("Unexpected service entries: %s", got)
	}
	if got := entries(file.Section(SectionScript)); got != "shell=$ chsh -s /bin/zsh # keep comment" {
		t.Errorf("Unexpected script entries: %s", got)
	}

	var names []string
	for _, s := range file.Sections {
		names = append(names, s.Name)
	}
	if strings.Join(names, ",") != "pacman,aur,service,script" {
		t.Errorf("Unexpected section order: %v", names)
	}
}

func TestLoad_INIInterpolation(t *testing.T) {
	path := writeFile(t, "vars.ini", `
[DEFAULT]
kernel = linux

[pacman]
headers = ${kernel}-headers
fonts = ttf-dejavu
all = ${fonts} ${aur:browser}

[aur]
browser = firefox-nightly

[script]
price = echo $$5 $HOME
`)

	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	pacman := file.Section(SectionPacman)
	if v, _ := pacman.Get("headers"); v != "linux-headers" {
		t.Errorf("Expected DEFAULT reference to resolve, got %q", v)
	}
	if v, _ := pacman.Get("all"); v != "ttf-dejavu firefox-nightly" {
		t.Errorf("Expected cross-section reference to resolve, got %q", v)
	}
	if v, _ := file.Section(SectionScript).Get("price"); v != "echo $5 $HOME" {
		t.Errorf("Expected literal dollars, got %q", v)
	}
	for _, s := range file.Sections {
		if s.Name == DefaultSection {
			t.Error("Expected DEFAULT to be excluded from sections")
		}
	}
	if _, ok := pacman.Get("kernel"); ok {
		t.Error("Expected DEFAULT keys not to leak into sections")
	}
}

func TestLoad_BadReference(t *testing.T) {
	path := writeFile(t, "bad.ini", "[pacman]\nx = ${missing}\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected an error for an unresolved reference")
	}
	if !strings.Contains(err.Error(), "missing") || !strings.Contains(err.Error(), "[pacman] x") {
		t.Errorf("Expected error to name the key, got %v", err)
	}
}

func TestLoad_ReferenceCycle(t *testing.T) {
	path := writeFile(t, "cycle.ini", "[pacman]\na = ${b}\nb = ${a}\n")

	if _, err := Load(path); err == nil {
		t.Fatal("Expected an error for a reference cycle")
	}
}

func TestLoad_UnterminatedReference(t *testing.T) {
	path := writeFile(t, "open.ini", "[pacman]\na = ${b\n")

	if _, err := Load(path); err == nil {
		t.Fatal("Expected an error for an unterminated reference")
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "desktop.yaml", `
DEFAULT:
  de: plasma
pacman:
  desktop: ${de}-meta
  tools: [git, curl]
aur:
service:
  display: sddm
script:
  hello: echo hi
`)

	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := entries(file.Section(SectionPacman)); got != "desktop=plasma-meta;tools=git curl" {
		t.Errorf("Unexpected pacman entries: %s", got)
	}
	if got := file.Section(SectionAUR).Len(); got != 0 {
		t.Errorf("Expected empty aur section, got %d entries", got)
	}
	if got := entries(file.Section(SectionService)); got != "display=sddm" {
		t.Errorf("Unexpected service entries: %s", got)
	}
}

func TestLoad_YAMLRejectsNestedValues(t *testing.T) {
	path := writeFile(t, "nested.yml", "pacman:\n  base:\n    deep: value\n")

	if _, err := Load(path); err == nil {
		t.Fatal("Expected an error for a nested mapping value")
	}
}

func TestLoad_YAMLRejectsNonMapping(t *testing.T) {
	path := writeFile(t, "list.yaml", "- pacman\n- aur\n")

	if _, err := Load(path); err == nil {
		t.Fatal("Expected an error for a top-level list")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("Expected an error for a missing file")
	}
}

func TestFile_MissingSectionIsEmpty(t *testing.T) {
	file := &File{Path: "x"}

	s := file.Section(SectionScript)
	if s.Name != SectionScript || s.Len() != 0 {
		t.Errorf("Expected empty %s section, got %+v", SectionScript, s)
	}
}
