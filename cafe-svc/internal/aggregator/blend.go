package aggregator

import "sipspotter/cafe-svc/internal/domain"

// BlendRating averages the external rating with the mean of the local reviews,
// 50/50, whatever the sample size behind either side. An external rating of 0
// is blended like any other value.
func BlendRating(externalRating float64, reviews []domain.LocalReview) float64 {
	if len(reviews) == 0 {
		return externalRating
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	localAverage := float64(sum) / float64(len(reviews))

	return (externalRating + localAverage) / 2
}

// TotalReviewCount is the external review count plus the number of local reviews.
func TotalReviewCount(listing domain.ExternalListing, reviews []domain.LocalReview) int {
	return listing.ReviewCount + len(reviews)
}
