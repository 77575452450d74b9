package learning

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/apierr"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
)

const maxNoteLength = 5000

type CertificateStatus struct {
	Issued        bool       `json:"issued"`
	IssuedAt      *time.Time `json:"issued_at"`
	CertificateID string     `json:"certificate_id,omitempty"`
}

type ProgressView struct {
	ID               uuid.UUID               `json:"id"`
	UserID           uuid.UUID               `json:"user_id"`
	CourseID         uuid.UUID               `json:"course_id"`
	Progress         int                     `json:"progress"`
	CompletedLessons []*types.ProgressLesson `json:"completed_lessons"`
	TotalLessons     int                     `json:"total_lessons"`
	StartedAt        time.Time               `json:"started_at"`
	LastAccessedAt   time.Time               `json:"last_accessed_at"`
	CompletedAt      *time.Time              `json:"completed_at"`
	Certificate      CertificateStatus       `json:"certificate"`
}

// PercentOf is round(100*k/n) with halves rounded up, and 0 when n is 0.
func PercentOf(k, n int) int {
	if n <= 0 || k <= 0 {
		return 0
	}
	if k > n {
		k = n
	}
	return (200*k + n) / (2 * n)
}

// Percentage counts only completed lessons that still belong to the course.
func Percentage(rec *types.ProgressRecord, courseLessonIDs []uuid.UUID) int {
	if rec == nil {
		return 0
	}
	in := make(map[uuid.UUID]struct{}, len(courseLessonIDs))
	for _, id := range courseLessonIDs {
		in[id] = struct{}{}
	}
	k := 0
	for _, pl := range rec.CompletedLessons {
		if pl == nil {
			continue
		}
		if _, ok := in[pl.LessonID]; ok {
			k++
		}
	}
	return PercentOf(k, len(in))
}

func newProgressView(rec *types.ProgressRecord, courseLessonIDs []uuid.UUID) *ProgressView {
	lessons := rec.CompletedLessons
	if lessons == nil {
		lessons = []*types.ProgressLesson{}
	}
	return &ProgressView{
		ID:               rec.ID,
		UserID:           rec.UserID,
		CourseID:         rec.CourseID,
		Progress:         Percentage(rec, courseLessonIDs),
		CompletedLessons: lessons,
		TotalLessons:     len(courseLessonIDs),
		StartedAt:        rec.StartedAt,
		LastAccessedAt:   rec.LastAccessedAt,
		CompletedAt:      rec.CompletedAt,
		Certificate: CertificateStatus{
			Issued:        rec.CertificateIssued,
			IssuedAt:      rec.CertificateIssuedAt,
			CertificateID: rec.CertificateID,
		},
	}
}

// GetOrCreate returns the record for the pair, creating an empty one first.
func (u Usecases) GetOrCreate(ctx context.Context, userID, courseID uuid.UUID) (*types.ProgressRecord, error) {
	var out *types.ProgressRecord
	err := u.inTx(ctx, func(dbc dbctx.Context) error {
		rec, err := u.loadProgressForUpdate(dbc, userID, courseID)
		if err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u Usecases) loadProgressForUpdate(dbc dbctx.Context, userID, courseID uuid.UUID) (*types.ProgressRecord, error) {
	if err := u.deps.Progress.Ensure(dbc, userID, courseID, u.now()); err != nil {
		return nil, apierr.Internal("ensure_progress_failed", err)
	}
	rec, err := u.deps.Progress.Get(dbc, userID, courseID, true)
	if err != nil {
		return nil, apierr.Internal("load_progress_failed", err)
	}
	if rec == nil {
		return nil, apierr.Internal("load_progress_failed", fmt.Errorf("progress record vanished"))
	}
	return rec, nil
}

func (u Usecases) reloadProgress(dbc dbctx.Context, userID, courseID uuid.UUID) (*types.ProgressRecord, error) {
	rec, err := u.deps.Progress.Get(dbc, userID, courseID, false)
	if err != nil {
		return nil, apierr.Internal("load_progress_failed", err)
	}
	if rec == nil {
		return nil, apierr.NotFound("progress_not_found", "no progress recorded for this course")
	}
	return rec, nil
}

type courseRef struct {
	user      *types.User
	course    *types.Course
	lessonIDs []uuid.UUID
}

func (c courseRef) hasLesson(id uuid.UUID) bool {
	for _, l := range c.lessonIDs {
		if l == id {
			return true
		}
	}
	return false
}

func (u Usecases) loadCourseRef(dbc dbctx.Context, userID, courseID uuid.UUID) (courseRef, error) {
	usr, err := u.deps.Users.GetByID(dbc, userID)
	if err != nil {
		return courseRef{}, apierr.Internal("load_user_failed", err)
	}
	if usr == nil {
		return courseRef{}, apierr.NotFound("user_not_found", "user not found")
	}
	course, err := u.deps.Courses.GetByID(dbc, courseID, false)
	if err != nil {
		return courseRef{}, apierr.Internal("load_course_failed", err)
	}
	if course == nil {
		return courseRef{}, apierr.NotFound("course_not_found", "course not found")
	}
	ids, err := u.deps.Lessons.ListIDsByCourse(dbc, courseID)
	if err != nil {
		return courseRef{}, apierr.Internal("load_lessons_failed", err)
	}
	return courseRef{user: usr, course: course, lessonIDs: ids}, nil
}

// completionResult carries what must happen after the transaction commits.
type completionResult struct {
	view   *ProgressView
	issued *issuedCertificate
}

// MarkLessonComplete adds the lesson to the completion set. Reaching 100% for
// the first time stamps completed_at and issues the certificate in the same
// transaction.
func (u Usecases) MarkLessonComplete(ctx context.Context, userID, courseID, lessonID uuid.UUID) (*ProgressView, error) {
	var res completionResult
	err := u.inTx(ctx, func(dbc dbctx.Context) error {
		var err error
		res, err = u.markLessonCompleteTx(dbc, userID, courseID, lessonID)
		return err
	})
	if err != nil {
		return nil, err
	}
	u.afterCompletion(ctx, userID, res)
	return res.view, nil
}

func (u Usecases) markLessonCompleteTx(dbc dbctx.Context, userID, courseID, lessonID uuid.UUID) (completionResult, error) {
	ref, err := u.loadCourseRef(dbc, userID, courseID)
	if err != nil {
		return completionResult{}, err
	}
	if !ref.hasLesson(lessonID) {
		return completionResult{}, apierr.NotFound("lesson_not_found", "lesson not found in course")
	}
	rec, err := u.loadProgressForUpdate(dbc, userID, courseID)
	if err != nil {
		return completionResult{}, err
	}

	now := u.now()
	if _, err := u.deps.Progress.AddLesson(dbc, rec.ID, lessonID, now); err != nil {
		return completionResult{}, apierr.Internal("add_lesson_failed", err)
	}
	if err := u.deps.Progress.Touch(dbc, rec.ID, now); err != nil {
		return completionResult{}, apierr.Internal("touch_progress_failed", err)
	}
	rec, err = u.reloadProgress(dbc, userID, courseID)
	if err != nil {
		return completionResult{}, err
	}

	var issued *issuedCertificate
	if Percentage(rec, ref.lessonIDs) == 100 {
		if rec.CompletedAt == nil {
			if _, err := u.deps.Progress.MarkCompleted(dbc, rec.ID, now); err != nil {
				return completionResult{}, apierr.Internal("mark_completed_failed", err)
			}
		}
		if !rec.CertificateIssued {
			rec, err = u.reloadProgress(dbc, userID, courseID)
			if err != nil {
				return completionResult{}, err
			}
			issued, err = u.issueCertificate(dbc, rec, ref)
			if err != nil {
				return completionResult{}, err
			}
		}
		rec, err = u.reloadProgress(dbc, userID, courseID)
		if err != nil {
			return completionResult{}, err
		}
	}
	return completionResult{view: newProgressView(rec, ref.lessonIDs), issued: issued}, nil
}

func (u Usecases) afterCompletion(ctx context.Context, userID uuid.UUID, res completionResult) {
	if res.issued != nil {
		u.archiveCertificate(ctx, res.issued)
		u.emit(ctx, userID, EventCertificateIssued, res.issued.cert)
	}
	if res.view != nil {
		u.emit(ctx, userID, EventProgressUpdated, res.view)
	}
}

// UnmarkLesson removes the lesson from the completion set if present. It never
// clears completed_at or the certificate.
func (u Usecases) UnmarkLesson(ctx context.Context, userID, courseID, lessonID uuid.UUID) (*ProgressView, error) {
	var view *ProgressView
	err := u.inTx(ctx, func(dbc dbctx.Context) error {
		ref, err := u.loadCourseRef(dbc, userID, courseID)
		if err != nil {
			return err
		}
		if !ref.hasLesson(lessonID) {
			return apierr.NotFound("lesson_not_found", "lesson not found in course")
		}
		rec, err := u.loadProgressForUpdate(dbc, userID, courseID)
		if err != nil {
			return err
		}
		if _, err := u.deps.Progress.RemoveLesson(dbc, rec.ID, lessonID); err != nil {
			return apierr.Internal("remove_lesson_failed", err)
		}
		if err := u.deps.Progress.Touch(dbc, rec.ID, u.now()); err != nil {
			return apierr.Internal("touch_progress_failed", err)
		}
		rec, err = u.reloadProgress(dbc, userID, courseID)
		if err != nil {
			return err
		}
		view = newProgressView(rec, ref.lessonIDs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.emit(ctx, userID, EventProgressUpdated, view)
	return view, nil
}

// AddNote overwrites the note on a completed content entry.
func (u Usecases) AddNote(ctx context.Context, userID, courseID, contentID uuid.UUID, note string) (*ProgressView, error) {
	if utf8.RuneCountInString(note) > maxNoteLength {
		return nil, apierr.Validation("note_too_long",
			fmt.Errorf("note exceeds %d characters", maxNoteLength),
			map[string]string{"note": fmt.Sprintf("at most %d characters", maxNoteLength)})
	}
	var view *ProgressView
	err := u.inTx(ctx, func(dbc dbctx.Context) error {
		rec, err := u.deps.Progress.Get(dbc, userID, courseID, true)
		if err != nil {
			return apierr.Internal("load_progress_failed", err)
		}
		if rec == nil {
			return apierr.NotFound("progress_not_found", "no progress recorded for this course")
		}
		ok, err := u.deps.Progress.SetNote(dbc, rec.ID, contentID, note)
		if err != nil {
			return apierr.Internal("set_note_failed", err)
		}
		if !ok {
			return apierr.NotFound("lesson_not_completed", "lesson is not in the completion set")
		}
		if err := u.deps.Progress.Touch(dbc, rec.ID, u.now()); err != nil {
			return apierr.Internal("touch_progress_failed", err)
		}
		ids, err := u.deps.Lessons.ListIDsByCourse(dbc, courseID)
		if err != nil {
			return apierr.Internal("load_lessons_failed", err)
		}
		rec, err = u.reloadProgress(dbc, userID, courseID)
		if err != nil {
			return err
		}
		view = newProgressView(rec, ids)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (u Usecases) GetProgress(ctx context.Context, userID, courseID uuid.UUID) (*ProgressView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	rec, err := u.deps.Progress.Get(dbc, userID, courseID, false)
	if err != nil {
		return nil, apierr.Internal("load_progress_failed", err)
	}
	if rec == nil {
		return nil, apierr.NotFound("progress_not_found", "no progress recorded for this course")
	}
	ids, err := u.deps.Lessons.ListIDsByCourse(dbc, courseID)
	if err != nil {
		return nil, apierr.Internal("load_lessons_failed", err)
	}
	return newProgressView(rec, ids), nil
}
