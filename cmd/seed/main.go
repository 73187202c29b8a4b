package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"cinebook/internal/cinemas"
	"cinebook/internal/movies"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/showings"
	"cinebook/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting CineBook Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"payments",
		"booking_seats",
		"bookings",
		"showings",
		"seats",
		"screens",
		"cinemas",
		"movies",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds users, one cinema with eight screens, movies and a first week
// of showings.
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	screenIDs, err := s.SeedCinema()
	if err != nil {
		return fmt.Errorf("failed to seed cinema: %w", err)
	}

	movieIDs, err := s.SeedMovies()
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	if err := s.SeedShowings(movieIDs, screenIDs); err != nil {
		return fmt.Errorf("failed to seed showings: %w", err)
	}

	// Fresh cache after reseeding
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates one admin and two regular users, all with password "qwerty".
func (s *Seeder) SeedUsers() error {
	fmt.Println("  👤 Seeding users...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"Admin", "User", "admin@cinebook.jp", users.RoleAdmin},
		{"Hanako", "Sato", "hanako.sato@example.com", users.RoleUser},
		{"Taro", "Yamada", "taro.yamada@example.com", users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return nil
}

// SeedCinema creates one multiplex with eight screens of mixed sizes, each
// with its full seat grid.
func (s *Seeder) SeedCinema() ([]uuid.UUID, error) {
	fmt.Println("  🏢 Seeding cinema and screens...")

	cinema := cinemas.Cinema{
		ID:        uuid.New(),
		Name:      "CineBook Shinjuku",
		Location:  "3-1-1 Shinjuku, Shinjuku-ku, Tokyo",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.db.PostgreSQL.Create(&cinema).Error; err != nil {
		return nil, fmt.Errorf("failed to create cinema: %w", err)
	}
	fmt.Printf("    ✅ Created cinema: %s\n", cinema.Name)

	screenSizes := []cinemas.ScreenSize{
		cinemas.ScreenSizeLarge,
		cinemas.ScreenSizeLarge,
		cinemas.ScreenSizeMedium,
		cinemas.ScreenSizeMedium,
		cinemas.ScreenSizeMedium,
		cinemas.ScreenSizeSmall,
		cinemas.ScreenSizeSmall,
		cinemas.ScreenSizeSmall,
	}

	var screenIDs []uuid.UUID
	for i, size := range screenSizes {
		rows, columns := size.GridDimensions()

		screen := cinemas.Screen{
			ID:        uuid.New(),
			Number:    fmt.Sprintf("%d", i+1),
			Size:      size,
			Rows:      rows,
			Columns:   columns,
			Capacity:  rows * columns,
			CinemaID:  cinema.ID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&screen).Error; err != nil {
			return nil, fmt.Errorf("failed to create screen %s: %w", screen.Number, err)
		}

		if err := s.createSeatGrid(screen.ID, rows, columns); err != nil {
			return nil, fmt.Errorf("failed to create seats for screen %s: %w", screen.Number, err)
		}

		screenIDs = append(screenIDs, screen.ID)
		fmt.Printf("    ✅ Created screen %s (%s, %d seats)\n", screen.Number, size, screen.Capacity)
	}

	return screenIDs, nil
}

// createSeatGrid provisions every seat for a screen, rows lettered from A.
func (s *Seeder) createSeatGrid(screenID uuid.UUID, rows, columns int) error {
	seats := make([]cinemas.Seat, 0, rows*columns)
	for r := 0; r < rows; r++ {
		rowLabel := string(rune('A' + r))
		for c := 1; c <= columns; c++ {
			seats = append(seats, cinemas.Seat{
				ID:        uuid.New(),
				Row:       rowLabel,
				Column:    c,
				IsActive:  true,
				ScreenID:  screenID,
				CreatedAt: time.Now(),
			})
		}
	}

	if err := s.db.PostgreSQL.CreateInBatches(seats, 100).Error; err != nil {
		return fmt.Errorf("failed to insert seat grid: %w", err)
	}
	return nil
}

// SeedMovies creates the sample catalog.
func (s *Seeder) SeedMovies() ([]uuid.UUID, error) {
	fmt.Println("  🎬 Seeding movies...")

	released := time.Now().AddDate(0, -1, 0)

	moviesData := []movies.Movie{
		{
			Title:           "Midnight Express Line",
			Description:     "A night-shift train driver uncovers a conspiracy running through the Tokyo metro.",
			DurationMinutes: 128,
			Genre:           "Thriller",
			Rating:          "PG-12",
			ReleaseDate:     &released,
		},
		{
			Title:           "The Paper Garden",
			Description:     "An origami artist rebuilds her life one fold at a time after losing her studio.",
			DurationMinutes: 104,
			Genre:           "Drama",
			Rating:          "G",
			ReleaseDate:     &released,
		},
		{
			Title:           "Orbital Drift",
			Description:     "Two stranded engineers race a decaying orbit to bring their station home.",
			DurationMinutes: 142,
			Genre:           "Sci-Fi",
			Rating:          "G",
			ReleaseDate:     &released,
		},
		{
			Title:           "Ramen Crossing",
			Description:     "A rivalry between two neighborhood ramen shops turns into an unlikely friendship.",
			DurationMinutes: 96,
			Genre:           "Comedy",
			Rating:          "G",
			ReleaseDate:     &released,
		},
	}

	var movieIDs []uuid.UUID
	for i := range moviesData {
		moviesData[i].ID = uuid.New()
		moviesData[i].CreatedAt = time.Now()
		moviesData[i].UpdatedAt = time.Now()

		if err := s.db.PostgreSQL.Create(&moviesData[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to create movie %s: %w", moviesData[i].Title, err)
		}

		movieIDs = append(movieIDs, moviesData[i].ID)
		fmt.Printf("    ✅ Created movie: %s\n", moviesData[i].Title)
	}

	return movieIDs, nil
}

// SeedShowings schedules each movie on its own screen for the next seven days,
// three showings a day. One evening slot per movie gets a uniform price.
func (s *Seeder) SeedShowings(movieIDs, screenIDs []uuid.UUID) error {
	fmt.Println("  🎟️ Seeding showings...")

	var durations []int
	for _, movieID := range movieIDs {
		var movie movies.Movie
		if err := s.db.PostgreSQL.First(&movie, "id = ?", movieID).Error; err != nil {
			return fmt.Errorf("failed to fetch movie: %w", err)
		}
		durations = append(durations, movie.DurationMinutes)
	}

	startHours := []int{10, 14, 19}
	uniformEvening := 1500

	tomorrow := time.Now().AddDate(0, 0, 1)
	base := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.Local)

	count := 0
	for i, movieID := range movieIDs {
		screenID := screenIDs[i%len(screenIDs)]

		for day := 0; day < 7; day++ {
			for _, hour := range startHours {
				start := base.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
				end := start.Add(time.Duration(durations[i]) * time.Minute)

				showing := showings.Showing{
					ID:        uuid.New(),
					StartTime: start,
					EndTime:   end,
					ScreenID:  screenID,
					MovieID:   movieID,
					CreatedAt: time.Now(),
					UpdatedAt: time.Now(),
				}
				if hour == 19 {
					price := uniformEvening
					showing.UniformPrice = &price
				}

				if err := s.db.PostgreSQL.Create(&showing).Error; err != nil {
					return fmt.Errorf("failed to create showing: %w", err)
				}
				count++
			}
		}
	}

	fmt.Printf("    ✅ Created %d showings\n", count)
	return nil
}
