package workflows

import (
	"context"
	"testing"

	"github.com/PolarWolf314/gitops-secrets/internal/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog(t *testing.T) {
	setupProject(t)
	_, err := loadProject()
	require.NoError(t, err)

	audit.Log(audit.Entry{Timestamp: "2024-01-01T10:00:00.000000Z", Operation: audit.OpEncrypt})
	audit.Log(audit.Entry{Timestamp: "2024-02-01T10:00:00.000000Z", Operation: audit.OpDecrypt})
	audit.Log(audit.Entry{Timestamp: "2024-03-01T10:00:00.000000Z", Operation: audit.OpEncrypt})

	tests := []struct {
		name string
		opts LogOptions
		want []string
	}{
		{"all", LogOptions{}, []string{"2024-01", "2024-02", "2024-03"}},
		{"limit keeps newest", LogOptions{Limit: 2}, []string{"2024-02", "2024-03"}},
		{"reverse", LogOptions{Reverse: true, Limit: 2}, []string{"2024-03", "2024-02"}},
		{"operation filter", LogOptions{Operations: "encrypt"}, []string{"2024-01", "2024-03"}},
		{"since", LogOptions{Since: "2024-02-01"}, []string{"2024-02", "2024-03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Log(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, 3, res.Total)

			got := make([]string, 0, len(res.Entries))
			for _, e := range res.Entries {
				got = append(got, e.Timestamp[:7])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogInvalidSince(t *testing.T) {
	setupProject(t)
	_, err := Log(context.Background(), LogOptions{Since: "01/02/2024"})
	assert.Error(t, err)
}

func TestLogEmpty(t *testing.T) {
	setupProject(t)
	res, err := Log(context.Background(), LogOptions{})
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
	assert.Zero(t, res.Total)
}
