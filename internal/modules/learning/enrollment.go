package learning

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/apierr"
	"github.com/yungbote/stepwise-backend/internal/platform/ctxutil"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
)

// Enroll creates an active enrollment unless the pair already holds an active
// or completed one. An active enrollment past its expiry is flipped to expired
// first and does not block.
func (u Usecases) Enroll(ctx context.Context, userID, courseID uuid.UUID) (*types.Enrollment, error) {
	var out *types.Enrollment
	err := u.inTx(ctx, func(dbc dbctx.Context) error {
		usr, err := u.deps.Users.LockByID(dbc, userID)
		if err != nil {
			return apierr.Internal("load_user_failed", err)
		}
		if usr == nil {
			return apierr.NotFound("user_not_found", "user not found")
		}
		course, err := u.deps.Courses.GetByID(dbc, courseID, false)
		if err != nil {
			return apierr.Internal("load_course_failed", err)
		}
		if course == nil {
			return apierr.NotFound("course_not_found", "course not found")
		}

		now := u.now()
		holding, err := u.deps.Enrollments.FindHolding(dbc, userID, courseID)
		if err != nil {
			return apierr.Internal("load_enrollment_failed", err)
		}
		if holding != nil && holding.Status == types.EnrollmentActive && !holding.ExpiryDate.After(now) {
			if err := u.deps.Enrollments.UpdateStatus(dbc, holding.ID, types.EnrollmentExpired); err != nil {
				return apierr.Internal("expire_enrollment_failed", err)
			}
			holding = nil
		}
		if holding != nil {
			return apierr.Conflict("already_enrolled", "user is already enrolled in this course")
		}

		out, err = u.deps.Enrollments.Create(dbc, &types.Enrollment{
			UserID:     userID,
			CourseID:   courseID,
			Status:     types.EnrollmentActive,
			StartDate:  now,
			ExpiryDate: now.Add(u.deps.EnrollmentTTL),
		})
		if err != nil {
			return apierr.Internal("create_enrollment_failed", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.emit(ctx, userID, EventEnrollmentCreated, out)
	return out, nil
}

// HasActiveAccess is true iff an active or completed enrollment for the pair
// has not expired.
func (u Usecases) HasActiveAccess(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	rows, err := u.deps.Enrollments.ListByUserCourse(dbctx.Context{Ctx: ctx}, userID, courseID)
	if err != nil {
		return false, apierr.Internal("load_enrollment_failed", err)
	}
	now := u.now()
	for _, e := range rows {
		if e.GrantsAccess(now) {
			return true, nil
		}
	}
	return false, nil
}

// RequireAccess gates course content for the caller. Admins always pass.
func (u Usecases) RequireAccess(ctx context.Context, caller *ctxutil.RequestData, courseID uuid.UUID) error {
	if caller == nil || caller.UserID == uuid.Nil {
		return apierr.Unauthorized("unauthorized", fmt.Errorf("missing caller"))
	}
	course, err := u.deps.Courses.GetByID(dbctx.Context{Ctx: ctx}, courseID, false)
	if err != nil {
		return apierr.Internal("load_course_failed", err)
	}
	if course == nil {
		return apierr.NotFound("course_not_found", "course not found")
	}
	if caller.IsAdmin() {
		return nil
	}
	ok, err := u.HasActiveAccess(ctx, caller.UserID, courseID)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.Forbidden("not_enrolled", "an active enrollment is required for this course")
	}
	return nil
}

func (u Usecases) ListEnrollments(ctx context.Context, userID uuid.UUID) ([]*types.Enrollment, error) {
	rows, err := u.deps.Enrollments.ListByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, apierr.Internal("load_enrollments_failed", err)
	}
	if rows == nil {
		rows = []*types.Enrollment{}
	}
	return rows, nil
}

// CancelEnrollment cancels the caller's own active enrollment.
func (u Usecases) CancelEnrollment(ctx context.Context, caller *ctxutil.RequestData, enrollmentID uuid.UUID) (*types.Enrollment, error) {
	if caller == nil || caller.UserID == uuid.Nil {
		return nil, apierr.Unauthorized("unauthorized", fmt.Errorf("missing caller"))
	}
	var out *types.Enrollment
	err := u.inTx(ctx, func(dbc dbctx.Context) error {
		e, err := u.deps.Enrollments.GetByID(dbc, enrollmentID)
		if err != nil {
			return apierr.Internal("load_enrollment_failed", err)
		}
		if e == nil || (e.UserID != caller.UserID && !caller.IsAdmin()) {
			return apierr.NotFound("enrollment_not_found", "enrollment not found")
		}
		if e.Status != types.EnrollmentActive {
			return apierr.Conflict("enrollment_not_active", "only active enrollments can be cancelled")
		}
		if err := u.deps.Enrollments.UpdateStatus(dbc, e.ID, types.EnrollmentCancelled); err != nil {
			return apierr.Internal("update_enrollment_failed", err)
		}
		e.Status = types.EnrollmentCancelled
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u Usecases) SetEnrollmentStatus(ctx context.Context, enrollmentID uuid.UUID, status string) (*types.Enrollment, error) {
	if !types.ValidEnrollmentStatus(status) {
		return nil, apierr.Validation("invalid_enrollment_status",
			fmt.Errorf("invalid enrollment status %q", status),
			map[string]string{"status": "must be one of active, completed, expired, cancelled"})
	}
	var out *types.Enrollment
	err := u.inTx(ctx, func(dbc dbctx.Context) error {
		e, err := u.deps.Enrollments.GetByID(dbc, enrollmentID)
		if err != nil {
			return apierr.Internal("load_enrollment_failed", err)
		}
		if e == nil {
			return apierr.NotFound("enrollment_not_found", "enrollment not found")
		}
		if status == types.EnrollmentActive || status == types.EnrollmentCompleted {
			other, err := u.deps.Enrollments.FindHolding(dbc, e.UserID, e.CourseID)
			if err != nil {
				return apierr.Internal("load_enrollment_failed", err)
			}
			if other != nil && other.ID != e.ID {
				return apierr.Conflict("already_enrolled", "another active or completed enrollment exists")
			}
		}
		if err := u.deps.Enrollments.UpdateStatus(dbc, e.ID, status); err != nil {
			return apierr.Internal("update_enrollment_failed", err)
		}
		e.Status = status
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
