package mechanics

import "calcdex/dex"

// Weather and terrain condition identifiers used across the engine.
const (
	WeatherSun  = "Sun"
	WeatherRain = "Rain"
	WeatherSand = "Sand"
	WeatherSnow = "Snow"
	WeatherHail = "Hail"

	TerrainElectric = "Electric"
	TerrainGrassy   = "Grassy"
	TerrainPsychic  = "Psychic"
	TerrainMisty    = "Misty"
)

// DetermineWeather returns the weather the Pokémon's ability summons on
// switch-in, or "" when it summons none. Snow Warning aliases to Hail before
// generation 9.
func DetermineWeather(src Snapshot, format string) string {
	d := dex.ForFormat(format)
	if _, ok := d.Ability(src.Ability); !ok {
		return ""
	}
	switch dex.ToID(src.Ability) {
	case "drought", "orichalcumpulse":
		return WeatherSun
	case "drizzle":
		return WeatherRain
	case "sandstream":
		return WeatherSand
	case "snowwarning":
		if d.Gen < 9 {
			return WeatherHail
		}
		return WeatherSnow
	}
	return ""
}

// DetermineTerrain returns the terrain the Pokémon's ability summons on
// switch-in, or "" when it summons none.
func DetermineTerrain(src Snapshot) string {
	switch dex.ToID(src.Ability) {
	case "electricsurge", "hadronengine":
		return TerrainElectric
	case "grassysurge":
		return TerrainGrassy
	case "psychicsurge":
		return TerrainPsychic
	case "mistysurge":
		return TerrainMisty
	}
	return ""
}
