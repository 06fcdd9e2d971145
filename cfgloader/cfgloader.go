// Package cfgloader loads and validates configuration at the start of an application.
package cfgloader

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rise-and-shine/bucketfs/mask"
	"github.com/rise-and-shine/bucketfs/observability/logger"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"

	envVar = "ENVIRONMENT"

	// CodeInvalidConfig is returned when the configuration cannot be loaded or is invalid.
	CodeInvalidConfig = "INVALID_CONFIG"
)

// MustLoad calls Load and exits the process when it fails.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		logger.Named("cfgloader").Fatalx(err)
	}
	return cfg
}

// Load reads ./config/${ENVIRONMENT}.yaml into T.
//
// A .env file is loaded first when present, and ${VAR} references in the YAML are
// expanded from the environment. Fields missing from the file get the value of their
// `default` tag, then the result is validated with go-playground/validator.
// Unless WithSilent is given, the loaded configuration is logged with fields tagged
// `mask:"true"` hidden.
func Load[T any](opts ...Option) (T, error) {
	var cfg T

	o := Options{Dir: "./config"}
	for _, opt := range opts {
		opt(&o)
	}

	_ = godotenv.Load()

	env := os.Getenv(envVar)
	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		return cfg, invalid("ENVIRONMENT must be one of production, staging, dev, local, test", errx.D{"got": env})
	}

	path := filepath.Join(o.Dir, env+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errx.Wrap(err, errx.WithCode(CodeInvalidConfig), errx.WithDetails(errx.D{"path": path}))
	}

	err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg)
	if err != nil {
		return cfg, errx.Wrap(err, errx.WithCode(CodeInvalidConfig), errx.WithDetails(errx.D{"path": path}))
	}

	err = defaults.Set(&cfg)
	if err != nil {
		return cfg, errx.Wrap(err, errx.WithCode(CodeInvalidConfig))
	}

	err = validate(cfg)
	if err != nil {
		return cfg, errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
	}

	if !o.Silent {
		printConfig(env, cfg)
	}

	return cfg, nil
}

func validate(cfg any) error {
	v := validator.New(validator.WithRequiredStructEnabled())

	err := v.Struct(cfg)
	errs, ok := err.(validator.ValidationErrors) //nolint:errorlint // validator returns the concrete type
	if !ok {
		return errx.Wrap(err)
	}

	failed := make([]string, 0, len(errs))
	for _, fe := range errs {
		tag := fe.Tag()
		if fe.Param() != "" {
			tag += "=" + fe.Param()
		}
		failed = append(failed, fe.Namespace()+": "+tag)
	}
	return invalid("invalid config fields", errx.D{"fields": strings.Join(failed, ", ")})
}

func invalid(msg string, details errx.D) error {
	return errx.New(msg, errx.WithCode(CodeInvalidConfig), errx.WithDetails(details))
}

func printConfig(env string, cfg any) {
	var b strings.Builder
	flat := mask.StructToOrdMap(cfg)
	for pair := flat.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(&b, "\n  %s: %v", pair.Key, pair.Value)
	}
	logger.Named("cfgloader").Infof("loaded %s config:%s", env, b.String())
}
