package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-b", "photos", "-a", ":5000"},
			allowed: []string{"-b"},
			want:    []string{"-b", "photos"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=app.json", "-a", ":5000"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=app.json"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next flag is not taken as value",
			args:    []string{"-c", "-config=alt.json"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "-config=alt.json"},
		},
		{
			name:    "order preserved",
			args:    []string{"-e", "http://minio:9000", "-q", "z", "-b", "bucket"},
			allowed: []string{"-b", "-e"},
			want:    []string{"-e", "http://minio:9000", "-b", "bucket"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"server", "-a", ":8080", "-c", "conf.json"}
	assert.Equal(t, "conf.json", ConfigFileFlag())

	os.Args = []string{"server", "-config=other.json"}
	assert.Equal(t, "other.json", ConfigFileFlag())

	os.Args = []string{"server", "-a", ":8080"}
	assert.Equal(t, "", ConfigFileFlag())
}
