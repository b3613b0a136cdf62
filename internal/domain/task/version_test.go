package task_test

import (
	"testing"

	"github.com/somoscreators/taskboard/internal/domain/task"
	"github.com/stretchr/testify/require"
)

func TestResolveVersion(t *testing.T) {
	cases := []struct {
		name        string
		code        string
		requestType string
		want        string
	}{
		{name: "briefing code", code: "BRF2", want: "V0"},
		{name: "version with suffix", code: "V3x", want: "V3"},
		{name: "briefing request type", requestType: "BRIEFING", want: "V0"},
		{name: "briefing request type wins over code", code: "V7", requestType: "[SICREDI] Briefing", want: "V0"},
		{name: "briefing match is case sensitive", code: "V2", requestType: "Briefing", want: "V2"},
		{name: "design code", code: "DES10", want: "DES10"},
		{name: "design code with suffix", code: "DES4-final", want: "DES4"},
		{name: "extension code", code: "EXT2b", want: "EXT2"},
		{name: "absent", want: ""},
		{name: "bare V", code: "V", want: "V"},
		{name: "V without digits", code: "Vfinal", want: "Vfinal"},
		{name: "unknown prefix", code: "R1", want: "R1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, task.ResolveVersion(tc.code, tc.requestType))
		})
	}
}

func TestVersionStrategy_Verbatim(t *testing.T) {
	require.Equal(t, "BRF2", task.VersionVerbatim.Resolve("BRF2", "BRIEFING"))
	require.Equal(t, "V0", task.VersionPrefix.Resolve("BRF2", ""))
}

func TestParseVersionStrategy(t *testing.T) {
	s, err := task.ParseVersionStrategy("")
	require.NoError(t, err)
	require.Equal(t, task.VersionPrefix, s)

	s, err = task.ParseVersionStrategy("Verbatim")
	require.NoError(t, err)
	require.Equal(t, task.VersionVerbatim, s)

	_, err = task.ParseVersionStrategy("semver")
	require.ErrorIs(t, err, task.ErrUnknownVersionStrategy)
}
