package objecthost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/service"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/config"
)

// tixtePayload はアップロードリクエストのpayload_jsonパートです
type tixtePayload struct {
	Domain string `json:"domain"`
	Name   string `json:"name"`
}

// tixteResponse はTixte APIのレスポンスボディです
type tixteResponse struct {
	Success bool `json:"success"`
	Data    struct {
		DirectURL   string `json:"direct_url"`
		DeletionURL string `json:"deletion_url"`
		Size        int64  `json:"size"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// TixteHost はTixte互換アップロードAPIへオブジェクトを公開します
// APIキーはAuthorizationヘッダーでのみ送信し、レスポンスの
// direct_urlを公開URLとして返します
type TixteHost struct {
	httpClient *http.Client
	apiKey     string
	domain     string
	endpoint   string
}

// NewTixteHost は新しいTixteHostを作成します
func NewTixteHost(cfg config.TixteConfig) *TixteHost {
	return &TixteHost{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		apiKey:     cfg.APIKey,
		domain:     cfg.Domain,
		endpoint:   cfg.Endpoint,
	}
}

// Upload はオブジェクトをアップロードし、公開URLを返します
// 最終ファイルはサイズが大きくなり得るためストリームのまま送信します
func (h *TixteHost) Upload(ctx context.Context, r io.Reader, name string) (*service.UploadResult, error) {
	payload, err := json.Marshal(tixtePayload{Domain: h.domain, Name: name})
	if err != nil {
		return nil, apperror.NewInternalError(fmt.Errorf("failed to encode upload payload: %w", err))
	}

	body, contentType := h.streamRequestBody(payload, r, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, body)
	if err != nil {
		return nil, apperror.NewInternalError(fmt.Errorf("failed to build upload request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", h.apiKey)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewUpstreamError("upload host is unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewUpstreamError("failed to read upload host response", err)
	}

	var parsed tixteResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	// 失敗時はホストが返したメッセージをそのまま呼び出し元へ伝える
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := strings.TrimSpace(string(raw))
		if decodeErr == nil && parsed.Error.Message != "" {
			message = parsed.Error.Message
		}
		return nil, apperror.NewUpstreamError(message, fmt.Errorf("upload host returned status %d", resp.StatusCode))
	}

	if decodeErr != nil {
		return nil, apperror.NewUpstreamError("upload host returned malformed response", decodeErr)
	}
	if !parsed.Success {
		message := parsed.Error.Message
		if message == "" {
			message = "upload host rejected the file"
		}
		return nil, apperror.NewUpstreamError(message, nil)
	}
	if parsed.Data.DirectURL == "" {
		return nil, apperror.NewUpstreamError("upload host response is missing direct_url", nil)
	}

	return &service.UploadResult{
		DirectURL:   parsed.Data.DirectURL,
		DeletionURL: parsed.Data.DeletionURL,
		Size:        parsed.Data.Size,
	}, nil
}

// streamRequestBody はpayload_jsonとファイル本体のmultipartボディをパイプ経由で構築します
// ファイル本体をメモリへ載せず、HTTP送信側が読むのに合わせて書き込みます
func (h *TixteHost) streamRequestBody(payload []byte, r io.Reader, name string) (io.Reader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		if err := mw.WriteField("payload_json", string(payload)); err != nil {
			pw.CloseWithError(fmt.Errorf("failed to write payload part: %w", err))
			return
		}
		fw, err := mw.CreateFormFile("file", name)
		if err != nil {
			pw.CloseWithError(fmt.Errorf("failed to create file part: %w", err))
			return
		}
		if _, err := io.Copy(fw, r); err != nil {
			pw.CloseWithError(fmt.Errorf("failed to write file part: %w", err))
			return
		}
		if err := mw.Close(); err != nil {
			pw.CloseWithError(fmt.Errorf("failed to finalize multipart body: %w", err))
			return
		}
		pw.Close()
	}()

	return pr, mw.FormDataContentType()
}

// インターフェースの実装を保証
var _ service.ObjectHost = (*TixteHost)(nil)
