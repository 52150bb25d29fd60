// Package mocks provides function-field mock implementations of the service
// interfaces, shared by handler and middleware tests.
//
// Each mock has one XxxFn field per interface method. A nil function falls
// back to the mock's default return values, so tests only set what they use:
//
//	svc := &mocks.MockReviewService{
//	    SubmitRatingFn: func(ctx context.Context, learnerID uuid.UUID, wordID string, rating domain.Rating) (*domain.SrsData, error) {
//	        return nil, review.ErrWordNotTracked
//	    },
//	}
package mocks
