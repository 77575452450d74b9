package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yungbote/stepwise-backend/internal/app"
	"github.com/yungbote/stepwise-backend/internal/seed"
)

func main() {
	var file string
	flag.StringVar(&file, "file", "catalog.yaml", "path to the catalog YAML file")
	flag.Parse()

	if err := run(context.Background(), file); err != nil {
		fmt.Printf("seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	cat, err := seed.Parse(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	application, err := app.New(ctx)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer application.Close(ctx)

	res, err := seed.Apply(ctx, application.Log, cat, application.Services.Auth, application.Services.Learning)
	if err != nil {
		return err
	}
	fmt.Printf("users: %d created, %d skipped\n", res.UsersCreated, res.UsersSkipped)
	fmt.Printf("courses: %d created, %d skipped\n", res.CoursesCreated, res.CoursesSkipped)
	return nil
}
