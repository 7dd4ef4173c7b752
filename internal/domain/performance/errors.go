package performance

import (
	"fmt"

	"hradmin/internal/domain/shared"
)

var ErrNotFound = fmt.Errorf("performance review %w", shared.ErrNotFound)

var errAlreadyCompleted = shared.Conflict("This performance review is already completed.")

const msgSelfReview = "The reviewer must be a different employee."

var constraints = map[string]shared.Constraint{
	"performance_reviews_employee_id_fkey":  {Field: "employee_id", Message: "Selected employee does not exist."},
	"performance_reviews_reviewer_id_fkey":  {Field: "reviewer_id", Message: "Selected reviewer does not exist."},
	"performance_reviews_review_type_check": {Field: "review_type", Message: "Selected review type is invalid."},
	"performance_reviews_rating_check":      {Field: "overall_rating", Message: "Overall rating must be between 1 and 5."},
	"performance_reviews_status_check":      {Field: "status", Message: "Selected status is invalid."},
}
