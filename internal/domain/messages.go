package domain

// MessageKey identifies one validation message in the catalog. Services
// never hard-code user-facing strings; they resolve keys through an
// injected Catalog so deployments can reword messages without touching
// service code.
type MessageKey string

const (
	MsgCinemaNameRequired MessageKey = "cinema.name_required"
	MsgCinemaNameTooLong  MessageKey = "cinema.name_too_long"
	MsgCinemaNameTaken    MessageKey = "cinema.name_taken"
	MsgCinemaNotFound     MessageKey = "cinema.not_found"
	MsgCinemaHasTickets   MessageKey = "cinema.has_tickets"

	MsgAuditoriumNameRequired MessageKey = "auditorium.name_required"
	MsgAuditoriumNameTooLong  MessageKey = "auditorium.name_too_long"
	MsgAuditoriumNameTaken    MessageKey = "auditorium.name_taken"
	MsgAuditoriumRowsRange    MessageKey = "auditorium.rows_range"
	MsgAuditoriumSeatsRange   MessageKey = "auditorium.seats_range"
	MsgAuditoriumNotFound     MessageKey = "auditorium.not_found"
	MsgAuditoriumHasTickets   MessageKey = "auditorium.has_tickets"

	MsgSeatPositionRange MessageKey = "seat.position_range"
	MsgSeatTaken         MessageKey = "seat.position_taken"
	MsgSeatNotFound      MessageKey = "seat.not_found"
	MsgSeatHasTickets    MessageKey = "seat.has_tickets"

	MsgMovieTitleRequired  MessageKey = "movie.title_required"
	MsgMovieYearRange      MessageKey = "movie.year_range"
	MsgMovieRatingRange    MessageKey = "movie.rating_range"
	MsgMovieNotFound       MessageKey = "movie.not_found"
	MsgMovieHasFutureShows MessageKey = "movie.has_future_projections"
	MsgMovieHasTickets     MessageKey = "movie.has_tickets"
	MsgMovieAlreadyTagged  MessageKey = "movie.already_tagged"
	MsgMovieTagMissing     MessageKey = "movie.tag_not_attached"

	MsgTagNameRequired MessageKey = "tag.name_required"
	MsgTagNameTaken    MessageKey = "tag.name_taken"
	MsgTagNotFound     MessageKey = "tag.not_found"

	MsgProjectionPastTime   MessageKey = "projection.past_time"
	MsgProjectionSlotTaken  MessageKey = "projection.slot_taken"
	MsgProjectionNotFound   MessageKey = "projection.not_found"
	MsgProjectionHasTickets MessageKey = "projection.has_tickets"

	MsgTicketNoSeats      MessageKey = "ticket.no_seats"
	MsgTicketSeatMismatch MessageKey = "ticket.seat_wrong_auditorium"
	MsgTicketSeatTaken    MessageKey = "ticket.seat_taken"
	MsgTicketNotFound     MessageKey = "ticket.not_found"

	MsgUserNameRequired     MessageKey = "user.name_required"
	MsgUserPasswordRequired MessageKey = "user.password_required"
	MsgUserNameTaken        MessageKey = "user.name_taken"
	MsgUserNotFound         MessageKey = "user.not_found"
	MsgUserHasTickets       MessageKey = "user.has_tickets"
	MsgUserRoleUnknown      MessageKey = "user.role_unknown"
)

// defaultTexts maps every known key to its built-in English text.
var defaultTexts = map[MessageKey]string{
	MsgCinemaNameRequired: "cinema name is required",
	MsgCinemaNameTooLong:  "cinema name must be at most 255 characters",
	MsgCinemaNameTaken:    "cinema name already exists",
	MsgCinemaNotFound:     "cinema not found",
	MsgCinemaHasTickets:   "cinema has auditoriums with sold tickets",

	MsgAuditoriumNameRequired: "auditorium name is required",
	MsgAuditoriumNameTooLong:  "auditorium name must be at most 50 characters",
	MsgAuditoriumNameTaken:    "auditorium name already exists in this cinema",
	MsgAuditoriumRowsRange:    "seat rows must be between 1 and 20",
	MsgAuditoriumSeatsRange:   "seats per row must be between 1 and 20",
	MsgAuditoriumNotFound:     "auditorium not found",
	MsgAuditoriumHasTickets:   "auditorium has projections with sold tickets",

	MsgSeatPositionRange: "seat row and number must be positive",
	MsgSeatTaken:         "a seat with this row and number already exists in the auditorium",
	MsgSeatNotFound:      "seat not found",
	MsgSeatHasTickets:    "seat has sold tickets",

	MsgMovieTitleRequired:  "movie title is required",
	MsgMovieYearRange:      "movie year must be between 1895 and 2100",
	MsgMovieRatingRange:    "movie rating must be between 1 and 10",
	MsgMovieNotFound:       "movie not found",
	MsgMovieHasFutureShows: "movie has upcoming projections and cannot be deleted",
	MsgMovieHasTickets:     "movie has projections with sold tickets",
	MsgMovieAlreadyTagged:  "movie already carries this tag",
	MsgMovieTagMissing:     "movie does not carry this tag",

	MsgTagNameRequired: "tag name is required",
	MsgTagNameTaken:    "tag name already exists",
	MsgTagNotFound:     "tag not found",

	MsgProjectionPastTime:   "projection time must not be in the past",
	MsgProjectionSlotTaken:  "another projection is already scheduled in this auditorium at that time",
	MsgProjectionNotFound:   "projection not found",
	MsgProjectionHasTickets: "projection has sold tickets and cannot be deleted",

	MsgTicketNoSeats:      "at least one seat must be requested",
	MsgTicketSeatMismatch: "seat does not belong to the auditorium of this projection",
	MsgTicketSeatTaken:    "seat is already taken for this projection",
	MsgTicketNotFound:     "ticket not found",

	MsgUserNameRequired:     "user name is required",
	MsgUserPasswordRequired: "password is required",
	MsgUserNameTaken:        "user name already exists",
	MsgUserNotFound:         "user not found",
	MsgUserHasTickets:       "user has purchased tickets and cannot be deleted",
	MsgUserRoleUnknown:      "unknown user role",
}

// Catalog resolves message keys to texts. A Catalog is built once at
// startup and injected into every service; it is read-only afterwards,
// so concurrent request handling needs no locking.
type Catalog struct {
	texts map[MessageKey]string
}

// DefaultCatalog returns a catalog with the built-in texts.
func DefaultCatalog() *Catalog {
	texts := make(map[MessageKey]string, len(defaultTexts))
	for k, v := range defaultTexts {
		texts[k] = v
	}
	return &Catalog{texts: texts}
}

// Override replaces the text for one key. Intended for startup wiring
// only, before the catalog is shared between goroutines.
func (c *Catalog) Override(key MessageKey, text string) {
	if text != "" {
		c.texts[key] = text
	}
}

// Get returns the text for a key. Unknown keys fall back to the key
// itself so a missing entry still yields a usable message.
func (c *Catalog) Get(key MessageKey) string {
	if t, ok := c.texts[key]; ok {
		return t
	}
	return string(key)
}
