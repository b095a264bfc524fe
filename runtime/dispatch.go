package runtime

// Dispatch routes a key event the way every runtime does: quit and escape
// presses end the game with ErrQuit, a space press restarts it and
// everything else goes to Game.HandleKey.
func Dispatch(game Game, ev KeyEvent) error {
	switch {
	case ev.Pressed && (ev.Key == KeyQuit || ev.Key == KeyEscape):
		return ErrQuit
	case ev.Pressed && ev.Key == KeySpace:
		game.Start()
		return nil
	}
	game.HandleKey(ev)
	return nil
}
