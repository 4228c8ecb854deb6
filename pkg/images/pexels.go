package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultPexelsBaseURL = "https://api.pexels.com/v1/search"

// ErrNoPhotos は検索結果が0件だったことを表します。サービス側の
// エラーではなく「この語に写真がない」という正常な結果です。
var ErrNoPhotos = errors.New("images: no photos found")

// PexelsClient は写真検索サービスへの薄いクライアントです。
type PexelsClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewPexelsClient は既定のエンドポイントを使う PexelsClient を返します。
func NewPexelsClient(apiKey string, timeout time.Duration) *PexelsClient {
	return &PexelsClient{
		apiKey:     apiKey,
		baseURL:    defaultPexelsBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewPexelsClientWithURL はエンドポイントを差し替えた PexelsClient を返します（テスト用）。
func NewPexelsClientWithURL(apiKey, baseURL string, timeout time.Duration) *PexelsClient {
	c := NewPexelsClient(apiKey, timeout)
	c.baseURL = baseURL
	return c
}

// pexelsResponse は検索APIの応答のうち利用する部分だけを写した構造体です。
type pexelsResponse struct {
	Photos []struct {
		Src struct {
			Original string `json:"original"`
		} `json:"src"`
	} `json:"photos"`
}

// Search は検索語で写真を1件検索し、原寸画像のURLを返します。
// 0件は ErrNoPhotos です。
func (c *PexelsClient) Search(ctx context.Context, query string) (string, error) {
	reqURL := fmt.Sprintf("%s?query=%s&per_page=1", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("写真検索リクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("写真検索リクエストに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("写真検索が予期しないステータスを返しました: %d", resp.StatusCode)
	}

	var parsed pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("写真検索応答のデコードに失敗しました: %w", err)
	}
	if len(parsed.Photos) == 0 {
		return "", fmt.Errorf("%w: query=%q", ErrNoPhotos, query)
	}

	slog.Debug("写真が見つかったのだ", "query", query)
	return parsed.Photos[0].Src.Original, nil
}

// Download は画像URLの中身をそのまま取得します。
func (c *PexelsClient) Download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("画像ダウンロードリクエストの作成に失敗しました: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("画像のダウンロードに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("画像ダウンロードが予期しないステータスを返しました: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
