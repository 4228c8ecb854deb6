package images

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNextGeneratedImagePath(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{
			name: "既存ファイルがなければ基本名なのだ",
			want: "rijeka_image.png",
		},
		{
			name:     "基本名だけあれば _1 なのだ",
			existing: []string{"rijeka_image.png"},
			want:     "rijeka_image_1.png",
		},
		{
			name:     "基本名と _1 があれば _2 なのだ",
			existing: []string{"rijeka_image.png", "rijeka_image_1.png"},
			want:     "rijeka_image_2.png",
		},
		{
			name:     "欠番があっても最大値の次なのだ",
			existing: []string{"rijeka_image.png", "rijeka_image_5.png"},
			want:     "rijeka_image_6.png",
		},
		{
			name:     "他の語のファイルは数えないのだ",
			existing: []string{"jabuka_image.png", "jabuka_image_1.png"},
			want:     "rijeka_image.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tt.existing {
				touch(t, dir, name)
			}

			got, err := NextGeneratedImagePath(dir, "rijeka")
			if err != nil {
				t.Fatalf("パス決定に失敗したのだ: %v", err)
			}
			if got != filepath.Join(dir, tt.want) {
				t.Errorf("期待: %s, 実際: %s", tt.want, filepath.Base(got))
			}
		})
	}

	t.Run("存在しないディレクトリはエラーなのだ", func(t *testing.T) {
		if _, err := NextGeneratedImagePath(filepath.Join(t.TempDir(), "nema"), "rijeka"); err == nil {
			t.Error("エラーが返るはずなのだ")
		}
	})
}

func TestSearchImagePath(t *testing.T) {
	got := SearchImagePath("media", "jabuka")
	if got != filepath.Join("media", "jabuka_image.png") {
		t.Errorf("写真の保存先が違うのだ: %s", got)
	}
}
