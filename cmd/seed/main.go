package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"helpcenter/internal/auth"
	"helpcenter/internal/config"
	"helpcenter/internal/domain/models/kb"
	"helpcenter/internal/seed"
)

func main() {
	// Parse command-line flags
	articles := flag.Int("articles", 20, "Number of articles to generate")
	updates := flag.Int("updates", 10, "Number of changelog entries to generate")
	future := flag.Int("future", 3, "How many of the generated articles are scheduled")
	out := flag.String("out", "", "Write the seed file here instead of stdout")
	adminToken := flag.Bool("admin-token", false, "Print an admin token signed with ADMIN_JWT_SECRET and exit")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "Lifetime of the printed admin token")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	logger := config.NewLogger(os.Stderr, cfg.LogLevel)

	if *adminToken {
		if cfg.AdminJWTSecret == "" {
			log.Fatalf("ADMIN_JWT_SECRET is not set")
		}
		token, err := auth.SignAdminToken(cfg.AdminJWTSecret, "seed-cli", *tokenTTL)
		if err != nil {
			log.Fatalf("Failed to sign token: %v", err)
		}
		fmt.Println(token)
		return
	}

	if *future > *articles {
		log.Fatalf("-future (%d) cannot exceed -articles (%d)", *future, *articles)
	}

	// Start from the built-in vocabulary so generated articles land in known categories
	base, err := seed.Default()
	if err != nil {
		log.Fatalf("Failed to load default seed: %v", err)
	}

	g := &generator{lorem: loremgen.New(), vocab: base}
	f := &seed.File{
		Categories: base.Categories,
		Tags:       base.Tags,
		Emojis:     base.Emojis,
	}
	for i := range *articles {
		f.Articles = append(f.Articles, g.article(i < *future))
	}
	for range *updates {
		f.Updates = append(f.Updates, g.update())
	}

	if err := f.Validate(); err != nil {
		log.Fatalf("Generated seed is invalid: %v", err)
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		log.Fatalf("Failed to marshal seed: %v", err)
	}

	if *out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	logger.Info("seed file written",
		"path", *out,
		"articles", len(f.Articles),
		"updates", len(f.Updates),
	)
}

type generator struct {
	lorem *loremgen.Lorem
	vocab *seed.File
}

func (g *generator) article(scheduled bool) seed.Article {
	a := seed.Article{
		ID:             uuid.NewString(),
		Title:          strings.TrimSuffix(g.lorem.Sentence(2, 5), "."),
		Subtitle:       g.lorem.Sentence(4, 8),
		Category:       pick(g.vocab.Categories),
		Content:        g.paragraphs(2 + rand.IntN(3)),
		Tags:           []string{pick(g.vocab.Tags)},
		HelpfulCount:   rand.IntN(50),
		UnhelpfulCount: rand.IntN(10),
	}
	if scheduled {
		a.PublishOffset = time.Duration(1+rand.IntN(14)) * 24 * time.Hour
	} else {
		a.PublishOffset = -time.Duration(rand.IntN(90)) * 24 * time.Hour
	}
	return a
}

func (g *generator) update() seed.Update {
	return seed.Update{
		ID:            uuid.NewString(),
		Title:         strings.TrimSuffix(g.lorem.Sentence(2, 6), "."),
		Emoji:         pick(g.vocab.Emojis),
		Type:          pick(kb.UpdateTypes),
		Likes:         rand.IntN(400),
		Description:   g.paragraphs(1),
		PublishOffset: -time.Duration(rand.IntN(180)) * 24 * time.Hour,
	}
}

func (g *generator) paragraphs(n int) string {
	var b strings.Builder
	for range n {
		b.WriteString("<p>")
		b.WriteString(g.lorem.Paragraph(3, 6))
		b.WriteString("</p>")
	}
	return b.String()
}

func pick[T any](items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[rand.IntN(len(items))]
}
