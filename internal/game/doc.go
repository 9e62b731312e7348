// Package game implements the lotto rules engine: players, their move
// policies and the draw loop.
//
// # Basic Usage
//
// Set up two players and run until someone wins, someone loses or the bag
// runs out:
//
//	g, err := game.NewGame([]game.PlayerConfig{
//	    {Name: "Alice"},
//	    {Name: "Bob", Automated: true},
//	}, game.WithSeed(42), game.WithConfirmer(prompter))
//	res, err := g.Run(ctx)
//	switch res.Outcome {
//	case game.Won:
//	    fmt.Println(res.Player.Name, "wins")
//	}
//
// # Deterministic Testing
//
// Every random choice flows from the *rand.Rand given with WithRNG or
// WithSeed, so the same seed produces the same cards and draws. For exact
// control over the draw order, WithTokenSource replaces the playable bag:
//
//	g, _ := game.NewGame(players, game.WithTokenSource(func(*rand.Rand) game.TokenSource {
//	    return game.NewSequenceSource(42, 7, 13)
//	}))
//
// # Events
//
// The game publishes GameStartEvent, TokenDrawnEvent, TurnEvent, MoveEvent and
// GameEndEvent on its EventBus. Renderers subscribe to it; the engine never
// prints.
package game
