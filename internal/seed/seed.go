// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"hiredev/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data Run generates.
type Options struct {
	Clients           int
	Developers        int
	ProjectsPerClient int
	// BidFraction is the chance (0..1) that a given developer bids on a
	// given project.
	BidFraction float64
	Password    string
}

// DefaultOptions returns a small but representative data set.
func DefaultOptions() Options {
	return Options{
		Clients:           5,
		Developers:        15,
		ProjectsPerClient: 3,
		BidFraction:       0.25,
		Password:          "Dem0&Pass",
	}
}

var (
	categories     = []models.ProjectCategory{models.CategoryWebDevelopment, models.CategoryDatabase, models.CategoryMachineLearn, models.CategoryArtificialInt, models.CategoryDataScience}
	types          = []models.ProjectType{models.TypeFullTime, models.TypePartTime, models.TypeContract}
	roles          = []models.DeveloperRole{models.DeveloperRoleSoftwareDeveloper, models.DeveloperRoleMLEngineer, models.DeveloperRoleSoftwareEngineer}
	skillCatalog   = []string{"Go", "Python", "TypeScript", "React", "PostgreSQL", "Redis", "Docker", "Kubernetes", "TensorFlow", "gRPC"}
	durationRanges = []string{"1 week", "2 weeks", "1 month", "3 months", "6 months"}
)

// Run populates the database with demo clients, developers, projects and bids.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	hashed, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	clients := make([]*models.User, 0, opts.Clients)
	for i := 0; i < opts.Clients; i++ {
		user := &models.User{
			Username:   fmt.Sprintf("client_%s%d", gofakeit.Word(), i),
			Email:      fmt.Sprintf("client%d@%s", i, gofakeit.DomainName()),
			Password:   string(hashed),
			Firstname:  gofakeit.FirstName(),
			Lastname:   gofakeit.LastName(),
			About:      gofakeit.Sentence(12),
			IsVerified: true,
			IsClient:   true,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seeding client: %w", err)
		}
		clients = append(clients, user)
	}

	developers := make([]*models.User, 0, opts.Developers)
	for i := 0; i < opts.Developers; i++ {
		user := &models.User{
			Username:    fmt.Sprintf("dev_%s%d", gofakeit.Word(), i),
			Email:       fmt.Sprintf("dev%d@%s", i, gofakeit.DomainName()),
			Password:    string(hashed),
			Firstname:   gofakeit.FirstName(),
			Lastname:    gofakeit.LastName(),
			About:       gofakeit.Sentence(12),
			IsVerified:  r.Float64() < 0.8,
			IsDeveloper: true,
		}
		profile := &models.DeveloperProfile{
			Role:   roles[r.Intn(len(roles))],
			Skills: pickSkills(r, 3+r.Intn(4)),
			Github: "https://github.com/" + gofakeit.Username(),
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			profile.UserID = user.ID
			return tx.Create(profile).Error
		})
		if err != nil {
			return fmt.Errorf("seeding developer: %w", err)
		}
		developers = append(developers, user)
	}

	projects := make([]*models.Project, 0, opts.Clients*opts.ProjectsPerClient)
	for _, client := range clients {
		for i := 0; i < opts.ProjectsPerClient; i++ {
			minPrice := int64(100 * (1 + r.Intn(20)))
			project := &models.Project{
				Name:         gofakeit.JobTitle() + " " + gofakeit.NounCommon(),
				Description:  gofakeit.Paragraph(1, 3, 8, "\n"),
				Category:     categories[r.Intn(len(categories))],
				Type:         types[r.Intn(len(types))],
				Availability: models.AvailabilityAvailable,
				Progress:     models.ProgressPending,
				Duration:     durationRanges[r.Intn(len(durationRanges))],
				MinPrice:     minPrice,
				MaxPrice:     minPrice + int64(100*(1+r.Intn(30))),
				ClientID:     client.ID,
			}
			if err := db.Create(project).Error; err != nil {
				return fmt.Errorf("seeding project: %w", err)
			}
			projects = append(projects, project)
		}
	}

	bids := 0
	for _, project := range projects {
		decided := false
		for _, dev := range developers {
			if r.Float64() > opts.BidFraction {
				continue
			}
			bid := &models.Bid{
				Proposal:    gofakeit.Paragraph(1, 2, 10, "\n"),
				Status:      models.BidStatusPending,
				ProjectID:   project.ID,
				DeveloperID: dev.ID,
			}
			// At most one accepted bid per project.
			if !decided && r.Float64() < 0.2 {
				bid.Status = models.BidStatusAccepted
				decided = true
			} else if r.Float64() < 0.15 {
				bid.Status = models.BidStatusRejected
			}
			if err := db.Create(bid).Error; err != nil {
				return fmt.Errorf("seeding bid: %w", err)
			}
			bids++
		}
	}

	log.Printf("Seeded %d clients, %d developers, %d projects, %d bids",
		len(clients), len(developers), len(projects), bids)
	return nil
}

func pickSkills(r *rand.Rand, n int) string {
	perm := r.Perm(len(skillCatalog))
	if n > len(perm) {
		n = len(perm)
	}
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ", "
		}
		out += skillCatalog[perm[i]]
	}
	return out
}
