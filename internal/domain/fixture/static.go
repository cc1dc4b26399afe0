package fixture

import "time"

// StaticMatches is the built-in fixture list served whenever the sports-data
// provider cannot be reached or no credential is configured. Four matches
// across multiple future dates, one currently in play.
func StaticMatches(now time.Time) []Match {
	return []Match{
		{
			ID:       1,
			UTCDate:  now.Add(24 * time.Hour),
			Status:   StatusTimed,
			Matchday: 24,
			HomeTeam: Team{
				ID:        64,
				Name:      "Liverpool FC",
				ShortName: "Liverpool",
				TLA:       "LIV",
				Crest:     "https://crests.football-data.org/64.png",
			},
			AwayTeam: Team{
				ID:        65,
				Name:      "Manchester City FC",
				ShortName: "Man City",
				TLA:       "MCI",
				Crest:     "https://crests.football-data.org/65.png",
			},
		},
		{
			ID:       2,
			UTCDate:  now.Add(48 * time.Hour),
			Status:   StatusTimed,
			Matchday: 24,
			HomeTeam: Team{
				ID:        57,
				Name:      "Arsenal FC",
				ShortName: "Arsenal",
				TLA:       "ARS",
				Crest:     "https://crests.football-data.org/57.png",
			},
			AwayTeam: Team{
				ID:        73,
				Name:      "Tottenham Hotspur FC",
				ShortName: "Tottenham",
				TLA:       "TOT",
				Crest:     "https://crests.football-data.org/73.svg",
			},
		},
		{
			ID:       3,
			UTCDate:  now,
			Status:   StatusInPlay,
			Matchday: 25,
			HomeTeam: Team{
				ID:        66,
				Name:      "Manchester United FC",
				ShortName: "Man United",
				TLA:       "MUN",
				Crest:     "https://crests.football-data.org/66.png",
			},
			AwayTeam: Team{
				ID:        61,
				Name:      "Chelsea FC",
				ShortName: "Chelsea",
				TLA:       "CHE",
				Crest:     "https://crests.football-data.org/61.png",
			},
		},
		{
			ID:       4,
			UTCDate:  now.Add(72 * time.Hour),
			Status:   StatusTimed,
			Matchday: 25,
			HomeTeam: Team{
				ID:        76,
				Name:      "Real Madrid CF",
				ShortName: "Real Madrid",
				TLA:       "RMA",
				Crest:     "https://crests.football-data.org/86.png",
			},
			AwayTeam: Team{
				ID:        81,
				Name:      "FC Barcelona",
				ShortName: "Barcelona",
				TLA:       "BAR",
				Crest:     "https://crests.football-data.org/81.svg",
			},
		},
	}
}
