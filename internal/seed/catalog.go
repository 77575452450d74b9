package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/stepwise-backend/internal/data/repos"
	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/modules/learning"
	"github.com/yungbote/stepwise-backend/internal/platform/apierr"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

type UserEntry struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// Catalog is the YAML document accepted by the seed command.
type Catalog struct {
	Users   []UserEntry            `yaml:"users"`
	Courses []learning.CourseInput `yaml:"courses"`
}

type UserCreator interface {
	CreateUser(ctx context.Context, name, email, password, role string) (*types.User, error)
}

type CourseCreator interface {
	ListCourses(ctx context.Context, filter repos.CourseFilter) ([]*learning.CourseView, error)
	CreateCourse(ctx context.Context, in learning.CourseInput) (*types.Course, error)
}

type Result struct {
	UsersCreated   int
	UsersSkipped   int
	CoursesCreated int
	CoursesSkipped int
}

func Parse(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cat Catalog
	if err := dec.Decode(&cat); err != nil {
		if errors.Is(err, io.EOF) {
			return &cat, nil
		}
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &cat, nil
}

// Apply creates everything in cat that is not there yet. Users are matched by
// email and courses by title, so running it twice is harmless.
func Apply(ctx context.Context, log *logger.Logger, cat *Catalog, users UserCreator, courses CourseCreator) (Result, error) {
	var res Result
	if cat == nil {
		return res, nil
	}

	for i, u := range cat.Users {
		_, err := users.CreateUser(ctx, u.Name, u.Email, u.Password, u.Role)
		switch {
		case err == nil:
			res.UsersCreated++
		case apierr.IsConflict(err):
			res.UsersSkipped++
		default:
			return res, fmt.Errorf("users[%d] %s: %w", i, u.Email, err)
		}
	}

	existing, err := courses.ListCourses(ctx, repos.CourseFilter{})
	if err != nil {
		return res, fmt.Errorf("list courses: %w", err)
	}
	titles := make(map[string]bool, len(existing))
	for _, c := range existing {
		titles[strings.ToLower(strings.TrimSpace(c.Title))] = true
	}

	for i, in := range cat.Courses {
		key := strings.ToLower(strings.TrimSpace(in.Title))
		if titles[key] {
			res.CoursesSkipped++
			continue
		}
		course, err := courses.CreateCourse(ctx, in)
		if err != nil {
			return res, fmt.Errorf("courses[%d] %q: %w", i, in.Title, err)
		}
		titles[key] = true
		res.CoursesCreated++
		log.Info("seeded course", "course_id", course.ID, "lessons", len(course.Lessons))
	}
	return res, nil
}
