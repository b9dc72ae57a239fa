package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/audio"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ok := true

			if err := audio.CheckFFmpeg(); err != nil {
				check(out, "ffmpeg", false, "not found. Install ffmpeg to record from the microphone")
				ok = false
			} else {
				check(out, "ffmpeg", true, "installed")
			}

			if err := pingGateway(deps.Config.APIURL); err != nil {
				check(out, "gateway", false, fmt.Sprintf("%s unreachable: %v", deps.Config.APIURL, err))
				ok = false
			} else {
				check(out, "gateway", true, deps.Config.APIURL)
			}

			if deps.Config.RedisAddr == "" {
				check(out, "redis", true, "not configured, transcripts kept in-process")
			} else if err := pingRedis(cmd.Context(), deps.Config.RedisAddr); err != nil {
				check(out, "redis", false, fmt.Sprintf("%s unreachable: %v", deps.Config.RedisAddr, err))
				ok = false
			} else {
				check(out, "redis", true, deps.Config.RedisAddr)
			}

			if ok {
				fmt.Fprintln(out, "\nAll prerequisites met. Ready to record!")
			} else {
				fmt.Fprintln(out, "\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}

func check(out io.Writer, name string, ok bool, detail string) {
	mark := "ok"
	if !ok {
		mark = "FAIL"
	}
	fmt.Fprintf(out, "[%s] %s: %s\n", mark, name, detail)
}

func pingGateway(baseURL string) error {
	hc := &http.Client{Timeout: 5 * time.Second}
	resp, err := hc.Get(strings.TrimRight(baseURL, "/") + "/ping")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func pingRedis(ctx context.Context, addr string) error {
	var rdb *redis.Client
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return err
		}
		rdb = redis.NewClient(opt)
	} else {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
	}
	defer rdb.Close()
	return rdb.Ping(ctx).Err()
}
