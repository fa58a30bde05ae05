package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"shopfront/internal/model"
)

// ListReviews fetches the reviews of a product.
func (c *Client) ListReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	var reviews []model.Review
	path := fmt.Sprintf("/review/product/%d", productID)
	if err := c.do(ctx, http.MethodGet, path, nil, &reviews); err != nil {
		return nil, fmt.Errorf("listing reviews for product %d: %w", productID, err)
	}
	return reviews, nil
}

// AddReviewRequest is the review submission payload. Rating is 1-5.
type AddReviewRequest struct {
	ProductID int64  `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// AddReview submits a review. The backend enforces the bought-it-first rule.
func (c *Client) AddReview(ctx context.Context, req AddReviewRequest) (*model.Review, error) {
	var review model.Review
	if err := c.do(ctx, http.MethodPost, "/review/add", req, &review); err != nil {
		return nil, fmt.Errorf("adding review: %w", err)
	}
	return &review, nil
}

// DeleteReview removes the caller's own review.
func (c *Client) DeleteReview(ctx context.Context, reviewID int64) error {
	path := fmt.Sprintf("/review/%d/delete", reviewID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("deleting review %d: %w", reviewID, err)
	}
	return nil
}
