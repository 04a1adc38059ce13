package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"scribe/internal/modkit"
	"scribe/internal/modkit/module"
	"scribe/internal/modkit/repokit"
	"scribe/internal/platform/config"
	"scribe/internal/platform/logger"
	"scribe/internal/platform/store"

	ingestdom "scribe/internal/services/ingest/domain"
	ingestmod "scribe/internal/services/ingest/module"
)

func main() { os.Exit(run()) }

// run returns the process exit code so deferred cleanup happens before exit
func run() int {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	var (
		fID       = flag.String("id", "", "video id; defaults to the transcript file name without extension")
		fTitle    = flag.String("title", "", "video title")
		fChannel  = flag.String("channel", "", "channel name")
		fUpload   = flag.String("upload", "", "upload date YYYY-MM-DD")
		fDuration = flag.Int("duration", 0, "video duration in seconds")
		fThumb    = flag.String("thumbnail", "", "thumbnail url")
		fFile     = flag.String("file", "", "transcript file (.srt or .vtt)")
		fDir      = flag.String("dir", "", "load every .srt/.vtt file in this directory, ids taken from file names")
		fReplace  = flag.Bool("replace", false, "reload videos that are already indexed")
		fInitOnly = flag.Bool("init-schema", false, "create the videos and segments tables and exit")
		fEnsure   = flag.Bool("ensure-schema", true, "create missing tables before loading")
	)
	flag.Parse()

	l := logger.Named("ingest")

	if !*fInitOnly && *fFile == "" && *fDir == "" {
		l.Fatal().Msg("one of -file, -dir or -init-schema is required")
	}
	if *fFile != "" && *fDir != "" {
		l.Fatal().Msg("-file and -dir are mutually exclusive")
	}
	var upload time.Time
	if *fUpload != "" {
		t, err := time.Parse(time.DateOnly, *fUpload)
		if err != nil {
			l.Fatal().Err(err).Msg("bad -upload")
		}
		upload = t
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		AppName: "scribe-ingest",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 2)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := repokit.CheckGuard(ctx, st); err != nil {
		l.Error().Err(err).Msg("postgres not reachable")
		return 1
	}

	m := ingestmod.New(modkit.Deps{Cfg: root, PG: st.PG, Log: *l})
	ports := module.MustPortsOf[ingestmod.Ports](m)

	if *fInitOnly || *fEnsure {
		if err := ports.Schema.EnsureSchema(ctx); err != nil {
			l.Fatal().Err(err).Msg("ensure schema failed")
		}
		if *fInitOnly {
			l.Info().Msg("schema ready")
			return 0
		}
	}

	files := []string{*fFile}
	if *fDir != "" {
		files = transcriptsIn(*fDir)
		if len(files) == 0 {
			l.Warn().Str("dir", *fDir).Msg("no transcripts found")
			return 0
		}
		if *fID != "" {
			l.Fatal().Msg("-id cannot be used with -dir")
		}
	}

	var loaded, skipped, failed int
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		video := ingestdom.Video{
			YTID:       *fID,
			Title:      *fTitle,
			Channel:    *fChannel,
			UploadDate: upload,
			Duration:   *fDuration,
			Thumbnail:  *fThumb,
		}
		if video.YTID == "" {
			video.YTID = stem(path)
		}

		res, err := ingestFile(ctx, ports.Ingest, path, video, *fReplace)
		switch {
		case err != nil:
			failed++
			l.Error().Err(err).Str("file", path).Msg("ingest failed")
		case res.Skipped:
			skipped++
		default:
			loaded++
		}
	}

	l.Info().Int("loaded", loaded).Int("skipped", skipped).Int("failed", failed).Msg("ingest done")
	if failed > 0 {
		return 1
	}
	return 0
}

func ingestFile(ctx context.Context, in ingestdom.IngestPort, path string, v ingestdom.Video, replace bool) (ingestdom.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return ingestdom.Result{}, err
	}
	defer f.Close()
	return in.Ingest(ctx, ingestdom.Request{Video: v, Transcript: f, Replace: replace})
}

func transcriptsIn(dir string) []string {
	var out []string
	for _, pattern := range []string{"*.srt", "*.vtt"} {
		matches, _ := filepath.Glob(filepath.Join(dir, pattern))
		out = append(out, matches...)
	}
	return out
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
