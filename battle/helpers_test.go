package battle

// ptr builds the pointer fields of partial patches.
func ptr[T any](v T) *T { return &v }

// newTestState seeds a gen 9 singles session with two synced rosters. Slot 0
// of each side is on the field through the selection-index fallback.
func newTestState() *State {
	state := NewState("battle-gen9-0001", "gen9ou")
	state.SyncPlayer(PlayerP1, Player{
		Name: "trainer-one",
		Pokemon: []Pokemon{
			{CalcdexID: "p1-valiant", SpeciesForme: "Iron Valiant"},
			{CalcdexID: "p1-chienpao", SpeciesForme: "Chien-Pao"},
			{CalcdexID: "p1-zacian", SpeciesForme: "Zacian", Moves: []string{"Iron Head", "Play Rough"}},
		},
	})
	second := Player{
		Name: "trainer-two",
		Pokemon: []Pokemon{
			{CalcdexID: "p2-gumshoos", SpeciesForme: "Gumshoos"},
			{CalcdexID: "p2-dragonite", SpeciesForme: "Dragonite"},
		},
	}
	second.Pokemon[1].Ability = Overridable[string]{Revealed: "Multiscale"}
	state.SyncPlayer(PlayerP2, second)
	return state
}
