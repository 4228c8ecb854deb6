package images

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"golang.org/x/time/rate"

	"github.com/sassmilic/ankigen-bcs/pkg/domain"
	"github.com/sassmilic/ankigen-bcs/pkg/prompts"
)

type fakeSearcher struct {
	searchURL string
	searchErr error
	data      []byte
}

func (f *fakeSearcher) Search(ctx context.Context, query string) (string, error) {
	return f.searchURL, f.searchErr
}

func (f *fakeSearcher) Download(ctx context.Context, imageURL string) ([]byte, error) {
	return f.data, nil
}

type fakeIllustrator struct {
	prompts []string
	resp    *imagedom.ImageResponse
	err     error
}

func (f *fakeIllustrator) GenerateMangaPanel(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error) {
	f.prompts = append(f.prompts, req.Prompt)
	return f.resp, f.err
}

func newTestAcquirer(t *testing.T, photos PhotoSearcher, ill Illustrator, mediaDir string, simpleNouns bool) *Acquirer {
	t.Helper()
	pb, err := prompts.NewBuilder()
	if err != nil {
		t.Fatal(err)
	}
	return NewAcquirer(photos, ill, pb, rate.NewLimiter(rate.Inf, 1), mediaDir, simpleNouns)
}

func TestAcquirer_Acquire(t *testing.T) {
	simpleRec := domain.WordRecord{
		CanonicalForm: "jabuka",
		WordType:      domain.WordTypeSimple,
		Translation:   "apple",
		PartOfSpeech:  "imenica",
	}
	complexRec := domain.WordRecord{
		CanonicalForm: "zanos",
		WordType:      domain.WordTypeComplex,
		Translation:   "rapture",
		PartOfSpeech:  "imenica",
	}

	t.Run("SIMPLE語は写真を固定名で保存するのだ", func(t *testing.T) {
		dir := t.TempDir()
		photos := &fakeSearcher{searchURL: "https://images.example/a.jpg", data: []byte("foto")}
		a := newTestAcquirer(t, photos, &fakeIllustrator{}, dir, false)

		path, err := a.Acquire(context.Background(), simpleRec)
		if err != nil {
			t.Fatalf("取得失敗なのだ: %v", err)
		}
		if filepath.Base(path) != "jabuka_image.png" {
			t.Errorf("保存名が違うのだ: %s", path)
		}
		data, err := os.ReadFile(path)
		if err != nil || string(data) != "foto" {
			t.Errorf("保存内容が違うのだ: %q, %v", data, err)
		}
	})

	t.Run("COMPLEX語は生成画像を連番で保存するのだ", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "zanos_image.png")
		ill := &fakeIllustrator{resp: &imagedom.ImageResponse{Data: []byte("ai"), MimeType: "image/png"}}
		a := newTestAcquirer(t, &fakeSearcher{}, ill, dir, false)

		path, err := a.Acquire(context.Background(), complexRec)
		if err != nil {
			t.Fatalf("取得失敗なのだ: %v", err)
		}
		if filepath.Base(path) != "zanos_image_1.png" {
			t.Errorf("既存の基本名があるので連番になるはずなのだ: %s", path)
		}
		if len(ill.prompts) != 1 || !strings.Contains(ill.prompts[0], `"zanos"`) {
			t.Errorf("図解プロンプトに語が埋め込まれるはずなのだ: %v", ill.prompts)
		}
	})

	t.Run("短絡モードでは COMPLEX 語も写真検索に回すのだ", func(t *testing.T) {
		dir := t.TempDir()
		photos := &fakeSearcher{searchURL: "https://images.example/z.jpg", data: []byte("foto")}
		ill := &fakeIllustrator{}
		a := newTestAcquirer(t, photos, ill, dir, true)

		path, err := a.Acquire(context.Background(), complexRec)
		if err != nil {
			t.Fatalf("取得失敗なのだ: %v", err)
		}
		if filepath.Base(path) != "zanos_image.png" {
			t.Errorf("写真側の固定名になるはずなのだ: %s", path)
		}
		if len(ill.prompts) != 0 {
			t.Error("生成サービスを呼んではいけないのだ")
		}
	})

	t.Run("検索0件は失敗として返るのだ", func(t *testing.T) {
		a := newTestAcquirer(t, &fakeSearcher{searchErr: ErrNoPhotos}, &fakeIllustrator{}, t.TempDir(), false)
		if _, err := a.Acquire(context.Background(), simpleRec); !errors.Is(err, ErrNoPhotos) {
			t.Errorf("ErrNoPhotos が伝播するはずなのだ: %v", err)
		}
	})

	t.Run("生成応答が空なら失敗なのだ", func(t *testing.T) {
		ill := &fakeIllustrator{resp: &imagedom.ImageResponse{}}
		a := newTestAcquirer(t, &fakeSearcher{}, ill, t.TempDir(), false)
		if _, err := a.Acquire(context.Background(), complexRec); err == nil {
			t.Error("エラーが返るはずなのだ")
		}
	})
}
