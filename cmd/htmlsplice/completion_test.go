package main

// Notes:
// - GenerateCompletion: we test that each script carries its shell's
//   entry points, every command and every flag. We don't run the scripts.
// - extractFlagsFromFlagSet: we test that completion metadata is applied.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGenerateCompletion_SupportedShells - Script generation per shell
// ---------------------------------------------------------------------------

func TestGenerateCompletion_SupportedShells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		shell        Shell
		wantContains []string
	}{
		{
			name:  "bash",
			shell: ShellBash,
			wantContains: []string{
				"_htmlsplice_completions",
				"complete -F _htmlsplice_completions htmlsplice",
				"compgen",
				"--debounce",
				"-r|--root)",
				"fr-FR en-US",
			},
		},
		{
			name:  "zsh",
			shell: ShellZsh,
			wantContains: []string{
				"#compdef htmlsplice",
				"_arguments",
				"_describe",
				"'--root[",
				":directory:_files -/",
				"(*.yaml|*.yml)",
			},
		},
		{
			name:  "fish",
			shell: ShellFish,
			wantContains: []string{
				"complete -c htmlsplice",
				"__fish_htmlsplice_needs_command",
				"__fish_htmlsplice_using_command watch' -l debounce",
				"-l root -s r",
			},
		},
		{
			name:  "powershell",
			shell: ShellPowerShell,
			wantContains: []string{
				"Register-ArgumentCompleter",
				"-CommandName htmlsplice",
				"CompletionResult",
				"'--json'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			output := buf.String()

			for _, want := range tt.wantContains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q", want)
				}
			}
			for _, cmd := range getCommands() {
				if !strings.Contains(output, cmd.Name) {
					t.Errorf("output missing command %q", cmd.Name)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := GenerateCompletion(&buf, Shell("tcsh"))
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Fatalf("error = %v, want ErrUnsupportedShell", err)
	}
	if !strings.Contains(err.Error(), "tcsh") {
		t.Errorf("error %q should name the shell", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestExtractFlagsFromFlagSet - Completion metadata
// ---------------------------------------------------------------------------

func TestExtractFlagsFromFlagSet(t *testing.T) {
	t.Parallel()

	flags := extractFlagsFromFlagSet(newWatchFlagSet(&watchFlags{}))
	byName := make(map[string]flagDef, len(flags))
	for _, f := range flags {
		byName[f.Long] = f
	}

	tests := []struct {
		name      string
		wantShort string
		wantType  flagType
	}{
		{"config", "c", flagFile},
		{"root", "r", flagDir},
		{"locale", "", flagEnum},
		{"quiet", "q", flagBool},
		{"verbose", "v", flagBool},
		{"debounce", "", flagDuration},
	}

	for _, tt := range tests {
		f, ok := byName[tt.name]
		if !ok {
			t.Errorf("flag --%s not extracted", tt.name)
			continue
		}
		if f.Short != tt.wantShort {
			t.Errorf("flag --%s: short = %q, want %q", tt.name, f.Short, tt.wantShort)
		}
		if f.Type != tt.wantType {
			t.Errorf("flag --%s: type = %v, want %v", tt.name, f.Type, tt.wantType)
		}
	}

	if got := byName["locale"].Values; len(got) == 0 || got[0] != "fr-FR" {
		t.Errorf("locale values = %v, want supported locales", got)
	}
	if got := byName["config"].FileGlob; got != "*.yaml,*.yml" {
		t.Errorf("config glob = %q", got)
	}
}
