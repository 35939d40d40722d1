package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindConfig(t *testing.T) {
	// base/
	//   repo/folio.yaml
	//     subdir/nested/
	//   hidden/.folio.yaml
	//   shadow/folio.yaml/   (a directory)
	//   empty/
	baseDir := t.TempDir()
	repoDir := filepath.Join(baseDir, "repo")
	subDir := filepath.Join(repoDir, "subdir")
	nestedDir := filepath.Join(subDir, "nested")
	hiddenDir := filepath.Join(baseDir, "hidden")
	shadowDir := filepath.Join(baseDir, "shadow")
	emptyDir := filepath.Join(baseDir, "empty")

	for _, dir := range []string{nestedDir, hiddenDir, shadowDir, emptyDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(repoDir, "folio.yaml"), []byte("base_url: http://localhost\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(hiddenDir, ".folio.yaml"), []byte("token: t\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(shadowDir, "folio.yaml"), 0755))

	tests := []struct {
		name      string
		startPath string
		want      string
		wantErr   bool
	}{
		{name: "Start at Config Dir", startPath: repoDir, want: filepath.Join(repoDir, "folio.yaml")},
		{name: "Start in Subdir", startPath: subDir, want: filepath.Join(repoDir, "folio.yaml")},
		{name: "Start Nested Deeply", startPath: nestedDir, want: filepath.Join(repoDir, "folio.yaml")},
		{name: "Hidden Config Name", startPath: hiddenDir, want: filepath.Join(hiddenDir, ".folio.yaml")},
		{name: "Directory Named Like Config Is Skipped", startPath: shadowDir, wantErr: true},
		{name: "No Config Found", startPath: emptyDir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindConfig(tt.startPath)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, filepath.Clean(got))
		})
	}
}
