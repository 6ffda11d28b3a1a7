package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitReachable(t *testing.T) {
	cases := map[string]struct {
		level string
		want  bool
	}{
		"open room":       {scenarioLevel, true},
		"walled off":      {"3\nP W E\nF W F\nF W F\n", false},
		"through a guard": {"3\nP G E\nW W W\nW W W\n", true},
		"no player":       {"2\nF E\nF F\n", false},
		"no exit":         {"2\nP F\nF F\n", false},
		"diagonal only":   {"2\nP W\nW E\n", false},
		"adjacent exit":   {"2\nP E\nF F\n", true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			g, _ := mustParse(t, tc.level)
			assert.Equal(t, tc.want, ExitReachable(g))
		})
	}
}

func TestExitReachable_EmbeddedLevels(t *testing.T) {
	for _, d := range Difficulties {
		f, err := EmbeddedLevels().Open(d)
		require.NoError(t, err)
		g, _, err := ParseLevel(f, seeded(1))
		f.Close()
		require.NoError(t, err)

		assert.True(t, ExitReachable(g), "%s level is winnable", d)
	}
}
