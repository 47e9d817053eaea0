package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/darkkaiser/contenthub-server/internal/config"
	"github.com/darkkaiser/contenthub-server/internal/service/api/constants"
	"github.com/darkkaiser/contenthub-server/internal/service/api/model/system"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

const defaultHealthcheckTimeout = 3 * time.Second

// newHealthcheckCommand 컨테이너 HEALTHCHECK 등에서 사용하는 헬스체크 명령을 생성합니다.
// 응답이 200이고 status 값이 "ok"가 아니면 0이 아닌 종료 코드로 끝납니다.
func newHealthcheckCommand() *cobra.Command {
	var (
		url     string
		port    int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "실행 중인 서버의 헬스체크 엔드포인트를 호출합니다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if url == "" {
				url = fmt.Sprintf("http://127.0.0.1:%d%s", port, constants.HealthPath)
			}

			client := &http.Client{Timeout: timeout}
			if err := probe(cmd.Context(), client, url); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), system.StatusOK)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "헬스체크 URL (기본값: http://127.0.0.1:<port>/api/health)")
	cmd.Flags().IntVar(&port, "port", config.DefaultListenPort, "서버 포트")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultHealthcheckTimeout, "요청 타임아웃")

	return cmd
}

// probe url로 GET 요청을 보내 서버가 정상 상태인지 확인합니다.
func probe(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("헬스체크 요청 생성 실패: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("헬스체크 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("헬스체크 응답 읽기 실패: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("비정상 응답 코드: %d", resp.StatusCode)
	}

	if status := gjson.GetBytes(body, "status").String(); status != system.StatusOK {
		return fmt.Errorf("비정상 상태 값: %q", status)
	}

	return nil
}
