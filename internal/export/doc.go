// Package export renders season standings for people: an Excel workbook with the
// table and per-round league points, and a PNG bar chart of the league point totals.
package export
