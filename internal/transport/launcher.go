package transport

import (
	"maps"
	"slices"
	"strings"
)

const (
	packageRunner        = "npx"
	packageRunnerWindows = "npx.cmd"
	autoConfirmShort     = "-y"
	autoConfirmLong      = "--yes"
)

// NormalizeLauncher adapts a launch command for the platform identified by goos.
// On windows a bare 'npx' is replaced by 'npx.cmd'.
// For any package runner launcher an auto-confirm flag is prepended unless one is already present,
// otherwise the runner would wait on an install confirmation nobody can answer.
// The returned args never alias the input.
func NormalizeLauncher(goos string, command string, args []string) (string, []string) {
	out := slices.Clone(args)
	if out == nil {
		out = []string{}
	}

	if goos == "windows" && strings.EqualFold(command, packageRunner) {
		command = packageRunnerWindows
	}

	if strings.Contains(strings.ToLower(command), packageRunner) && !hasAutoConfirm(out) {
		out = append([]string{autoConfirmShort}, out...)
	}

	return command, out
}

func hasAutoConfirm(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return strings.EqualFold(a, autoConfirmShort) || strings.EqualFold(a, autoConfirmLong)
	})
}

// EnvList converts env into sorted KEY=VALUE entries.
func EnvList(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		out = append(out, k+"="+env[k])
	}
	return out
}
