package cli

import (
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/client"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/handoff"
)

type Dependencies struct {
	Config *Config
	Log    *logrus.Logger
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scribe",
		Short: "Record a visit, transcribe it, and review the generated SOAP note",
		Long:  "A CLI that records a patient visit (or takes an audio file), transcribes it through the scribe gateway, and walks the generated SOAP note through review, editing, and save.",
	}

	rootCmd.AddCommand(NewRecordCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}

func (d *Dependencies) apiClient() *client.Client {
	return client.New(d.Config.APIURL, nil)
}

// transcriptStore returns the transcript slot store: Redis when
// configured, otherwise in-process.
func (d *Dependencies) transcriptStore() handoff.Store {
	addr := d.Config.RedisAddr
	if addr == "" {
		return handoff.NewMemoryStore()
	}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if opt, err := redis.ParseURL(addr); err == nil {
			return handoff.NewRedisStore(redis.NewClient(opt))
		}
		d.Log.WithField("redis_addr", addr).Warn("invalid redis url, falling back to in-process store")
		return handoff.NewMemoryStore()
	}
	return handoff.NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}))
}
