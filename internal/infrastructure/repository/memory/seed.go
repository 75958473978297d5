package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

const (
	SeedTestWeeks = 4
	SeedLiveWeeks = 2
)

var seedTeams = []struct {
	Name  string
	Venue string
}{
	{"Inter", "San Siro"},
	{"Milan", "San Siro"},
	{"Juventus", "Allianz Stadium"},
	{"Napoli", "Stadio Diego Armando Maradona"},
	{"Roma", "Stadio Olimpico"},
	{"Lazio", "Stadio Olimpico"},
	{"Atalanta", "Gewiss Stadium"},
	{"Fiorentina", "Stadio Artemio Franchi"},
	{"Bologna", "Stadio Renato Dall'Ara"},
	{"Torino", "Stadio Olimpico Grande Torino"},
	{"Genoa", "Stadio Luigi Ferraris"},
	{"Udinese", "Bluenergy Stadium"},
	{"Monza", "U-Power Stadium"},
	{"Lecce", "Stadio Via del Mare"},
	{"Verona", "Stadio Marcantonio Bentegodi"},
	{"Cagliari", "Unipol Domus"},
	{"Empoli", "Stadio Carlo Castellani"},
	{"Frosinone", "Stadio Benito Stirpe"},
	{"Sassuolo", "Mapei Stadium"},
	{"Salernitana", "Stadio Arechi"},
}

var seedTestSeasonStart = time.Date(2023, time.August, 19, 16, 30, 0, 0, time.UTC)

// SeedFixtures builds the catalog used with the memory driver: a finished historical season
// start for test mode and upcoming weeks for live mode, scheduled relative to now.
func SeedFixtures(now time.Time) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, (SeedTestWeeks+SeedLiveWeeks)*len(seedTeams)/2)
	for week := 1; week <= SeedTestWeeks; week++ {
		start := seedTestSeasonStart.AddDate(0, 0, 7*(week-1))
		for i, pair := range roundPairs(week) {
			home, away := (week*3+i*7)%4, (week*5+i*3)%3
			out = append(out, seedFixture(prediction.ModeTest, week, i, pair, start, fixture.StatusFinished, &home, &away))
		}
	}

	liveStart := now.UTC().Truncate(24*time.Hour).AddDate(0, 0, 3).Add(18 * time.Hour)
	for week := 1; week <= SeedLiveWeeks; week++ {
		start := liveStart.AddDate(0, 0, 7*(week-1))
		for i, pair := range roundPairs(week) {
			out = append(out, seedFixture(prediction.ModeLive, week, i, pair, start, fixture.StatusScheduled, nil, nil))
		}
	}

	return out
}

func seedFixture(mode string, week, index int, pair [2]int, start time.Time, status string, home, away *int) fixture.Fixture {
	return fixture.Fixture{
		ID:        fmt.Sprintf("%s-w%02d-%02d", mode, week, index+1),
		Mode:      mode,
		Week:      week,
		HomeTeam:  seedTeams[pair[0]].Name,
		AwayTeam:  seedTeams[pair[1]].Name,
		KickoffAt: start.Add(time.Duration(index/3) * 24 * time.Hour).Add(time.Duration(index%3) * 150 * time.Minute),
		Venue:     seedTeams[pair[0]].Venue,
		Status:    status,
		HomeScore: home,
		AwayScore: away,
	}
}

// roundPairs returns the home/away team indexes of one round using the circle method.
func roundPairs(week int) [][2]int {
	n := len(seedTeams)
	rotation := make([]int, n-1)
	for i := range rotation {
		rotation[i] = 1 + (i+week-1)%(n-1)
	}

	pairs := make([][2]int, 0, n/2)
	pairs = append(pairs, orient(week, 0, rotation[0]))
	for i := 1; i < n/2; i++ {
		pairs = append(pairs, orient(week+i, rotation[i], rotation[n-1-i]))
	}
	return pairs
}

func orient(seed, a, b int) [2]int {
	if seed%2 == 0 {
		return [2]int{b, a}
	}
	return [2]int{a, b}
}
