package commands

import (
	"context"
	"time"
)

// FireCourseCommandHandler sends every item of a course to the display now.
type FireCourseCommandHandler struct {
	uowFactory UoWFactory
}

// NewFireCourseCommandHandler creates a handler for course firing.
func NewFireCourseCommandHandler(uowFactory UoWFactory) FireCourseCommandHandler {
	return FireCourseCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle fires the course and persists the item changes in one
// transaction. Returns errs.ObjectNotFoundError when the order does not
// exist or no item of the order belongs to the course.
func (h *FireCourseCommandHandler) Handle(ctx context.Context, cmd FireCourseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.FireCourse(cmd.CourseID(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
