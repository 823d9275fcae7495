package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/pkg/slug"
)

var (
	firstNames = []string{"Mara", "Tomás", "Ines", "Kenji", "Aylin", "Jonas", "Noor", "Élise", "Piotr", "Sade", "Lucía", "Arvid"}
	lastNames  = []string{"Lind", "Okafor", "Schöne", "Tanaka", "Demir", "Moreau", "Kowalski", "Haddad", "Brandt", "Silva"}
	locations  = []string{"Berlin", "Lisbon", "Istanbul", "Osaka", "Lagos", "Montréal", "Glasgow", "Oaxaca"}
	styles     = []string{"abstract", "figurative", "ink", "landscape", "ceramics", "collage", "photography"}
	mediums    = []string{"Oil on canvas", "Acrylic on panel", "Ink on paper", "Watercolour", "Stoneware", "Silver gelatin print", "Mixed media"}
	sizes      = []string{"30 x 40 cm", "50 x 70 cm", "60 x 60 cm", "100 x 120 cm", "21 x 29.7 cm"}
	titleA     = []string{"Quiet", "Northern", "Salt", "Late", "Folded", "Blue", "Borrowed", "Low"}
	titleB     = []string{"Harbour", "Field", "Study", "Garden", "Window", "Tide", "Orchard", "Hours"}
	newsTitles = []string{"Open studio weekend", "New series in progress", "Group show opening", "Residency notes", "Prints available"}
)

// seedNamespace keeps seeded ids stable across runs.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://artfolio.dev/seed"))

type seedArtist struct {
	Artist   domain.Artist
	Artworks []domain.Artwork
	News     []domain.NewsPost
}

func seedID(kind string, parts ...int) string {
	key := kind
	for _, p := range parts {
		key += fmt.Sprintf("/%d", p)
	}
	return uuid.NewSHA1(seedNamespace, []byte(key)).String()
}

func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.IntN(len(xs))]
}

// generate builds n artists with artworks and news. The same seed yields the
// same data.
func generate(n int, seed uint64, now time.Time) []seedArtist {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	out := make([]seedArtist, 0, n)

	for i := range n {
		name := pick(rng, firstNames) + " " + pick(rng, lastNames)
		username := fmt.Sprintf("%s-%d", slug.Username(name), i+1)
		created := now.Add(-time.Duration(rng.IntN(365*24)) * time.Hour).UTC()

		artist := domain.Artist{
			ID:              "seed|artist-" + fmt.Sprint(i+1),
			Username:        username,
			Name:            name,
			BioShort:        fmt.Sprintf("Works in %s.", pick(rng, mediums)),
			Location:        pick(rng, locations),
			Style:           pick(rng, styles),
			InstagramHandle: username,
			ProfileImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/400/400", username),
			CreatedAt:       created,
			UpdatedAt:       created,
		}

		artworks := make([]domain.Artwork, 0, 8)
		for j := range 3 + rng.IntN(6) {
			year := 2005 + rng.IntN(20)
			a := domain.Artwork{
				ID:          seedID("artwork", i, j),
				UserID:      artist.ID,
				Title:       pick(rng, titleA) + " " + pick(rng, titleB),
				ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s-%d/1200/900", username, j),
				YearCreated: &year,
				Medium:      pick(rng, mediums),
				Dimensions:  pick(rng, sizes),
				Available:   rng.IntN(4) != 0,
				SortOrder:   j,
				CreatedAt:   created,
				UpdatedAt:   created,
			}
			if a.Available && rng.IntN(2) == 0 {
				price := int64(200+rng.IntN(4800)) * 100
				a.Price = &price
			}
			artworks = append(artworks, a)
		}

		news := make([]domain.NewsPost, 0, 3)
		for j := range rng.IntN(4) {
			p := domain.NewsPost{
				ID:        seedID("news", i, j),
				UserID:    artist.ID,
				Title:     pick(rng, newsTitles),
				Content:   fmt.Sprintf("%s in %s. Drop by or get in touch.", pick(rng, newsTitles), artist.Location),
				Status:    domain.NewsDraft,
				CreatedAt: created,
				UpdatedAt: created,
			}
			if j%2 == 0 {
				p.FeaturedImageURL = fmt.Sprintf("https://picsum.photos/seed/%s-news-%d/1200/630", username, j)
				p.Publish(created.Add(time.Duration(j+1) * 24 * time.Hour))
			}
			news = append(news, p)
		}

		out = append(out, seedArtist{Artist: artist, Artworks: artworks, News: news})
	}
	return out
}
