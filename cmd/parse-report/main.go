package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/init-pkg/report-parser/domain/app"
	"github.com/init-pkg/report-parser/domain/dtos"
	report_parser_module "github.com/init-pkg/report-parser/internal/app/report-parser"
	report_decoder "github.com/init-pkg/report-parser/internal/app/report-parser/decoder"
	report_parser_service "github.com/init-pkg/report-parser/internal/app/report-parser/service"
	remote_file_client "github.com/init-pkg/report-parser/internal/clients/remote-file"
	"github.com/init-pkg/report-parser/internal/config"
	"github.com/init-pkg/report-parser/internal/errs"

	"github.com/alexflint/go-arg"
)

type Args struct {
	Path     string `arg:"positional,required" help:"report file (.xlsx or .xls) or an http(s) url"`
	Profile  string `arg:"--profile" help:"YAML profile overriding the built-in labels"`
	Date1904 bool   `arg:"--date1904" help:"read serial dates in the 1904 date system"`
	Pretty   bool   `arg:"--pretty" help:"indent the JSON output"`
	Verbose  bool   `arg:"-v,--verbose" help:"log to stderr"`
}

func (Args) Description() string {
	return "parse-report prints the operations of an Ozon sales report as JSON."
}

func main() {
	var args Args
	arg.MustParse(&args)

	cfg, e := config.Load()
	if e != nil {
		fmt.Fprintln(os.Stderr, e)
		os.Exit(2)
	}
	if args.Profile != "" {
		cfg.Report.ProfilePath = args.Profile
	}
	cfg.Report.Date1904 = cfg.Report.Date1904 || args.Date1904

	logOut := io.Discard
	if args.Verbose {
		logOut = os.Stderr
	}
	log := slog.New(slog.NewTextHandler(logOut, nil))

	parser, e := report_parser_module.NewParser(cfg)
	if e != nil {
		fmt.Fprintln(os.Stderr, e)
		os.Exit(2)
	}
	fetcher := remote_file_client.New(cfg, nil, log)
	service := report_parser_service.New(fetcher, report_decoder.New(log), parser, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := run(ctx, service, args.Path)
	envelope := dtos.SuccessEnvelope(res)
	if err != nil {
		envelope = dtos.ErrorEnvelope(err)
	}

	enc := json.NewEncoder(os.Stdout)
	if args.Pretty {
		enc.SetIndent("", "  ")
	}
	if e := enc.Encode(envelope); e != nil {
		fmt.Fprintln(os.Stderr, e)
		os.Exit(2)
	}
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, service app.ReportParserService, path string) (*app.ParseReportResult, errs.Error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return service.ParseURL(ctx, path)
	}
	file, e := os.ReadFile(path)
	if e != nil {
		return nil, errs.BadRequest("cannot read "+path, map[string]any{"reason": e.Error()})
	}
	res, err := service.ParseFile(ctx, file)
	if res != nil {
		res.Source = path
	}
	return res, err
}
