// Package images は1語につき1枚の画像を取得します。
// 具体物（SIMPLE）は写真検索、抽象語（COMPLEX）は画像生成で賄い、
// 生成パスには独立したレート制限がかかります。
package images

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"golang.org/x/time/rate"

	"github.com/sassmilic/ankigen-bcs/pkg/domain"
	"github.com/sassmilic/ankigen-bcs/pkg/prompts"
)

// illustrationAspectRatio はフラッシュカード向けの正方形です。
const illustrationAspectRatio = "1:1"

// PhotoSearcher は写真検索サービス境界の抽象です。*PexelsClient が満たします。
type PhotoSearcher interface {
	Search(ctx context.Context, query string) (string, error)
	Download(ctx context.Context, imageURL string) ([]byte, error)
}

// Illustrator は画像生成サービス境界の抽象です。
// gemini-image-kit の ImageGenerator が満たします。
type Illustrator interface {
	GenerateMangaPanel(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error)
}

// Acquirer は1語分の画像取得の実体です。取得は呼び出し側の責任で
// 逐次に行います。リミッターは内部で同期化されているため、将来
// 並列化する場合の安全余地にもなっています。
type Acquirer struct {
	photos      PhotoSearcher
	illustrator Illustrator
	prompts     *prompts.Builder
	limiter     *rate.Limiter
	mediaDir    string
	simpleNouns bool
}

// NewAcquirer は Acquirer を生成します。limiter は生成パス専用の
// レート制限（N枚/期間）です。
func NewAcquirer(photos PhotoSearcher, illustrator Illustrator, pb *prompts.Builder, limiter *rate.Limiter, mediaDir string, simpleNouns bool) *Acquirer {
	return &Acquirer{
		photos:      photos,
		illustrator: illustrator,
		prompts:     pb,
		limiter:     limiter,
		mediaDir:    mediaDir,
		simpleNouns: simpleNouns,
	}
}

// Acquire はレコードの分類に応じて画像を取得・保存し、保存先パスを返します。
// 失敗した語は出力から外れるだけで履歴には載らないため、次回の実行で
// 再試行されます。短絡モードでは全語を写真検索で扱います。
func (a *Acquirer) Acquire(ctx context.Context, rec domain.WordRecord) (string, error) {
	wordType := rec.WordType
	if a.simpleNouns {
		wordType = domain.WordTypeSimple
	}

	if wordType == domain.WordTypeSimple {
		return a.acquirePhoto(ctx, rec)
	}
	return a.generateIllustration(ctx, rec)
}

// acquirePhoto は訳語を検索語にして写真を1枚取得します。
// 保存先は語ごとに固定で、再取得は上書きです。
func (a *Acquirer) acquirePhoto(ctx context.Context, rec domain.WordRecord) (string, error) {
	imageURL, err := a.photos.Search(ctx, rec.Translation)
	if err != nil {
		return "", fmt.Errorf("写真検索に失敗しました (word=%s): %w", rec.CanonicalForm, err)
	}

	data, err := a.photos.Download(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("写真の取得に失敗しました (word=%s): %w", rec.CanonicalForm, err)
	}

	path := SearchImagePath(a.mediaDir, rec.CanonicalForm)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("写真の保存に失敗しました (word=%s): %w", rec.CanonicalForm, err)
	}

	slog.Info("写真を保存したのだ", "word", rec.CanonicalForm, "path", path)
	return path, nil
}

// generateIllustration は画像生成サービスで図解を1枚作ります。
// レート制限に達している場合は失敗ではなく空きが出るまで待ちます。
func (a *Acquirer) generateIllustration(ctx context.Context, rec domain.WordRecord) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("画像生成のレート制限待ちが中断されました: %w", err)
	}

	prompt, err := a.prompts.Illustration(prompts.IllustrationData{
		Word:         rec.CanonicalForm,
		Gloss:        rec.Translation,
		PartOfSpeech: rec.PartOfSpeech,
	})
	if err != nil {
		return "", err
	}

	slog.Info("図解を生成するのだ", "word", rec.CanonicalForm)
	resp, err := a.illustrator.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:      prompt,
		AspectRatio: illustrationAspectRatio,
	})
	if err != nil {
		return "", fmt.Errorf("図解の生成に失敗しました (word=%s): %w", rec.CanonicalForm, err)
	}
	if resp == nil || len(resp.Data) == 0 {
		return "", fmt.Errorf("図解の応答が空です (word=%s)", rec.CanonicalForm)
	}

	path, err := NextGeneratedImagePath(a.mediaDir, rec.CanonicalForm)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, resp.Data, 0644); err != nil {
		return "", fmt.Errorf("図解の保存に失敗しました (word=%s): %w", rec.CanonicalForm, err)
	}

	slog.Info("図解を保存したのだ", "word", rec.CanonicalForm, "path", path)
	return path, nil
}
