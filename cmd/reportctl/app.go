package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/yigit/eduverse/internal/app/analytics"
	"github.com/yigit/eduverse/internal/app/models"
	"github.com/yigit/eduverse/internal/app/models/dto"
	appRepos "github.com/yigit/eduverse/internal/app/repositories"
	"github.com/yigit/eduverse/internal/app/repositories/inmem"
	"github.com/yigit/eduverse/internal/app/services"
	"github.com/yigit/eduverse/internal/bootstrap"
	"github.com/yigit/eduverse/internal/config"
	"github.com/yigit/eduverse/internal/db"
	"github.com/yigit/eduverse/internal/pkg/logger"
	"github.com/yigit/eduverse/internal/seed"
)

var errFixtureMode = errors.New("command needs PostgreSQL and cannot run with --fixture")

// runtime is the state shared by every command of one invocation
type runtime struct {
	cfg      *config.Config
	log      zerolog.Logger
	database *db.PostgresDB
}

func newApp() *cli.App {
	rt := &runtime{}

	return &cli.App{
		Name:  "reportctl",
		Usage: "run EduVerse engagement reports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the YAML configuration",
				Value:   bootstrap.DefaultConfigPath,
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:  "fixture",
				Usage: "read facts from a YAML snapshot instead of PostgreSQL",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log debug output to stderr",
			},
		},
		Before: rt.setup,
		After:  rt.close,
		Commands: []*cli.Command{
			{
				Name:  "courses",
				Usage: "course engagement analytics",
				Action: rt.report(func(ctx context.Context, c *cli.Context, svc services.ReportService) (interface{}, error) {
					return svc.GetCourseEngagementAnalytics(ctx)
				}),
			},
			{
				Name:  "contributors",
				Usage: "top contributors leaderboard",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "number of rows (0 selects the configured default)"},
					&cli.StringFlag{Name: "role", Usage: "only rank users with this role"},
					&cli.StringFlag{Name: "course", Usage: "rank activity inside one course"},
					&cli.StringFlag{Name: "weights", Usage: "weights preset: received, authored or activity"},
				},
				Action: rt.report(func(ctx context.Context, c *cli.Context, svc services.ReportService) (interface{}, error) {
					return svc.GetTopContributorsLeaderboard(ctx, dto.ContributorsRequest{
						Limit:    c.Int("limit"),
						Role:     c.String("role"),
						CourseID: c.String("course"),
						Weights:  c.String("weights"),
					})
				}),
			},
			{
				Name:  "reactions",
				Usage: "reaction distribution analysis",
				Action: rt.report(func(ctx context.Context, c *cli.Context, svc services.ReportService) (interface{}, error) {
					return svc.GetReactionDistributionAnalysis(ctx)
				}),
			},
			{
				Name:  "instructors",
				Usage: "instructor course performance",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "instructor", Usage: "only courses taught by this user id"},
				},
				Action: rt.report(func(ctx context.Context, c *cli.Context, svc services.ReportService) (interface{}, error) {
					return svc.GetInstructorCoursePerformanceReport(ctx, c.Int64("instructor"))
				}),
			},
			{
				Name:  "workload",
				Usage: "instructor teaching load",
				Action: rt.report(func(ctx context.Context, c *cli.Context, svc services.ReportService) (interface{}, error) {
					return svc.GetInstructorWorkloadReport(ctx)
				}),
			},
			{
				Name:  "popular",
				Usage: "most engaging posts",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "number of rows (0 selects the configured default)"},
					&cli.StringFlag{Name: "course", Usage: "only posts of this course"},
				},
				Action: rt.report(func(ctx context.Context, c *cli.Context, svc services.ReportService) (interface{}, error) {
					return svc.GetPopularPostsReport(ctx, dto.PopularPostsRequest{
						Limit:    c.Int("limit"),
						CourseID: c.String("course"),
					})
				}),
			},
			{
				Name:  "user-stats",
				Usage: "activity summary of one user",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "user", Usage: "user id", Required: true},
				},
				Action: rt.report(func(ctx context.Context, c *cli.Context, svc services.ReportService) (interface{}, error) {
					return svc.GetUserActivityStats(ctx, c.Int64("user"))
				}),
			},
			{
				Name:   "migrate",
				Usage:  "apply pending SQL migrations",
				Action: rt.migrate,
			},
			{
				Name:   "seed",
				Usage:  "insert the demo dataset into an empty database",
				Action: rt.seed,
			},
			{
				Name:  "token",
				Usage: "mint a bearer token for local testing",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "user", Usage: "user id", Required: true},
					&cli.StringFlag{Name: "email", Usage: "user email"},
					&cli.StringFlag{Name: "role", Usage: "user role", Value: string(models.RoleAdmin)},
				},
				Action: rt.token,
			},
		},
	}
}

func (rt *runtime) setup(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	rt.cfg = cfg

	level := logger.WarnLevel
	if c.Bool("verbose") {
		level = logger.DebugLevel
	}
	rt.log = logger.Configure(logger.Config{Level: level, Pretty: true, Output: c.App.ErrWriter})
	return nil
}

func (rt *runtime) close(*cli.Context) error {
	if rt.database != nil {
		rt.database.Close()
		rt.database = nil
	}
	return nil
}

// connect opens the PostgreSQL pool once per invocation
func (rt *runtime) connect(ctx context.Context) (*db.PostgresDB, error) {
	if rt.database == nil {
		database, err := db.NewPostgresDB(ctx, rt.cfg, rt.log)
		if err != nil {
			return nil, err
		}
		rt.database = database
	}
	return rt.database, nil
}

func (rt *runtime) source(c *cli.Context) (analytics.FactSource, error) {
	if path := c.String("fixture"); path != "" {
		return inmem.LoadFile(path)
	}
	database, err := rt.connect(c.Context)
	if err != nil {
		return nil, err
	}
	return appRepos.NewRepositories(database.Pool).FactStore(), nil
}

type reportFunc func(ctx context.Context, c *cli.Context, svc services.ReportService) (interface{}, error)

func (rt *runtime) report(run reportFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		source, err := rt.source(c)
		if err != nil {
			return err
		}
		out, err := run(c.Context, c, bootstrap.NewReportService(rt.cfg, source, rt.log))
		if err != nil {
			return err
		}
		return printJSON(c, out)
	}
}

func (rt *runtime) migrate(c *cli.Context) error {
	if c.String("fixture") != "" {
		return errFixtureMode
	}
	database, err := rt.connect(c.Context)
	if err != nil {
		return err
	}
	return bootstrap.RunMigrations(c.Context, rt.cfg, database, rt.log)
}

func (rt *runtime) seed(c *cli.Context) error {
	if c.String("fixture") != "" {
		return errFixtureMode
	}
	database, err := rt.connect(c.Context)
	if err != nil {
		return err
	}
	seeded, err := seed.CreateDefaultData(c.Context, seed.NewRepositoryStore(appRepos.NewRepositories(database.Pool)), rt.log)
	if err != nil {
		return err
	}
	return printJSON(c, map[string]bool{"seeded": seeded})
}

func (rt *runtime) token(c *cli.Context) error {
	if rt.cfg.JWT.Secret == "" {
		return errors.New("jwt.secret (JWT_SECRET) must be set to mint tokens")
	}
	role := models.RoleType(c.String("role"))
	if !role.IsValid() {
		return fmt.Errorf("unknown role %q", role)
	}

	user := &models.User{ID: c.Int64("user"), Email: c.String("email"), Role: role}
	token, expiresAt, err := bootstrap.NewJWTService(rt.cfg).GenerateAccessToken(user)
	if err != nil {
		return err
	}
	return printJSON(c, map[string]interface{}{
		"accessToken": token,
		"expiresAt":   expiresAt,
		"tokenType":   "Bearer",
	})
}

func printJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
