package main

import (
	"context"
	"net/http"

	"github.com/gepheum/soia-go/example/geo"
	"github.com/gepheum/soia-go/rpc"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type serveFlags struct {
	configPath  string
	addr        string
	development bool
}

// register wires the serve flags onto fs. Split out so the flag set stays
// testable independent of cobra.
func (f *serveFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&f.addr, "addr", "", "listen address (overrides config)")
	fs.BoolVar(&f.development, "dev", false, "development logging (overrides config)")
}

func newServeCommand() *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the geo demo service over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadServeConfig(flags.configPath)
			if err != nil {
				return err
			}
			if flags.addr != "" {
				cfg.Addr = flags.addr
			}
			if flags.development {
				cfg.Development = true
			}
			return runServe(cfg)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func runServe(cfg serveConfig) error {
	logger, err := newLogger(cfg.Development)
	if err != nil {
		return err
	}
	defer logger.Sync()

	svc, err := newGeoService(logger)
	if err != nil {
		return err
	}

	logger.Info("soiademo: listening", zap.String("addr", cfg.Addr))
	return http.ListenAndServe(cfg.Addr, rpc.HTTPHandler(svc))
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Method numbers are fixed in the demo schema; a schema compiler would
// normally derive unnumbered ones by hashing the name.
var (
	translateMethod = rpc.Method[geo.Point, geo.Point]{
		Name:               "Translate",
		Number:             17,
		RequestSerializer:  geo.PointSerializer(),
		ResponseSerializer: geo.PointSerializer(),
	}
	centerMethod = rpc.Method[geo.Shape, geo.Point]{
		Name:               "Center",
		Number:             18,
		RequestSerializer:  geo.ShapeSerializer(),
		ResponseSerializer: geo.PointSerializer(),
	}
)

func newGeoService(logger *zap.Logger) (*rpc.Service, error) {
	svc := rpc.NewService(logger)

	err := rpc.AddMethod(svc, translateMethod, func(_ context.Context, p geo.Point) (geo.Point, error) {
		return geo.NewPoint(p.X()+1, p.Y()+1), nil
	})
	if err != nil {
		return nil, err
	}

	err = rpc.AddMethod(svc, centerMethod, func(_ context.Context, s geo.Shape) (geo.Point, error) {
		if p, ok := s.At(); ok {
			return p, nil
		}
		return geo.Point{}, nil
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}
