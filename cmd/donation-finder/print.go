package main

import (
	"fmt"
	"io"
	"strings"

	"donation_finder/internal/domain/entity"
)

func printResults(w io.Writer, found []entity.Place, quiet, showReviews bool) {
	if len(found) == 0 {
		fmt.Fprintln(w, "No donation opportunities found.")
		return
	}

	fmt.Fprintf(w, "\nFound %d donation opportunities:\n", len(found))
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for i, place := range found {
		if quiet {
			printCompact(w, i+1, place)
			continue
		}

		printDetailed(w, i+1, place, showReviews)
	}
}

func printCompact(w io.Writer, n int, place entity.Place) {
	var b strings.Builder

	fmt.Fprintf(&b, "%d. %s", n, place.Name)
	if place.DistanceKm > 0 {
		fmt.Fprintf(&b, " (%.1fkm)", place.DistanceKm)
	}
	if place.Rating > 0 {
		fmt.Fprintf(&b, " ⭐%v", place.Rating)
	}
	if place.UserRatingsTotal > 0 {
		fmt.Fprintf(&b, " (%d reviews)", place.UserRatingsTotal)
	}

	fmt.Fprintln(w, b.String())
}

func printDetailed(w io.Writer, n int, place entity.Place, showReviews bool) {
	fmt.Fprintf(w, "%d. %s\n", n, place.Name)

	if place.Address != "" {
		fmt.Fprintf(w, "   📍 %s\n", place.Address)
	}
	if place.Rating > 0 {
		reviewText := ""
		if place.UserRatingsTotal > 0 {
			reviewText = fmt.Sprintf(" (%d reviews)", place.UserRatingsTotal)
		}
		fmt.Fprintf(w, "   ⭐ Rating: %v/5%s\n", place.Rating, reviewText)
	}
	if place.DistanceKm > 0 {
		fmt.Fprintf(w, "   📏 Distance: %.1f km\n", place.DistanceKm)
	}
	if place.Phone != "" {
		fmt.Fprintf(w, "   📞 Phone: %s\n", place.Phone)
	}
	if place.Website != "" {
		fmt.Fprintf(w, "   🌐 Website: %s\n", place.Website)
	}
	if place.Email != "" {
		fmt.Fprintf(w, "   📧 Email: %s\n", place.Email)
	}
	if len(place.OpeningHours) > 0 {
		fmt.Fprintf(w, "   🕒 Hours: %s\n", place.OpeningHours[0])
	}
	if len(place.Types) > 0 {
		categories := place.Types
		if len(categories) > 3 {
			categories = categories[:3]
		}
		fmt.Fprintf(w, "   🏷️  Categories: %s\n", strings.Join(categories, ", "))
	}

	if showReviews && len(place.Reviews) > 0 {
		fmt.Fprintf(w, "   📝 Reviews (%d):\n", len(place.Reviews))
		for _, review := range place.Reviews {
			fmt.Fprintf(w, "      • %s %s %s\n",
				review.AuthorName,
				strings.Repeat("⭐", int(review.Rating)),
				review.TimeDescription,
			)

			if text := strings.TrimSpace(reviewExcerpt(review.Text)); text != "" {
				fmt.Fprintf(w, "        %q\n", text)
			}
		}
	}

	fmt.Fprintln(w)
}

func reviewExcerpt(text string) string {
	const limit = 200

	if len(text) <= limit {
		return text
	}

	return text[:limit] + "..."
}
