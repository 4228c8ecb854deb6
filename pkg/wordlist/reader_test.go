package wordlist

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRead(t *testing.T) {
	t.Run("コメント行と空行を除いて入力順に読むのだ", func(t *testing.T) {
		content := "# dnevne riječi\n\njabuka\n  rijeka  \n# TODO kasnije\nzanos\n\n"
		path := filepath.Join(t.TempDir(), "words.txt")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		got, err := Read(path)
		if err != nil {
			t.Fatalf("読み込み失敗なのだ: %v", err)
		}

		want := []string{"jabuka", "rijeka", "zanos"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("期待: %v, 実際: %v", want, got)
		}
	})

	t.Run("存在しないファイルはエラーなのだ", func(t *testing.T) {
		if _, err := Read(filepath.Join(t.TempDir(), "nema.txt")); err == nil {
			t.Error("エラーが返るはずなのだ")
		}
	})
}
