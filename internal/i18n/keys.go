// Package i18n holds the translated strings served by the API.
//
// Strings are addressed by a closed set of Key constants and resolved by direct
// lookup in a per-locale table. A key missing from a locale falls back to English,
// and a key missing everywhere resolves to its own name.
package i18n

// Key identifies a translatable string.
type Key string

// Error messages returned in API error bodies.
const (
	ErrInvalidRequest     Key = "errors.invalidRequest"
	ErrValidation         Key = "errors.validation"
	ErrDuplicateEmail     Key = "errors.duplicateEmail"
	ErrInvalidCredentials Key = "errors.invalidCredentials"
	ErrUnauthenticated    Key = "errors.unauthenticated"
	ErrInvalidToken       Key = "errors.invalidToken"
	ErrForbidden          Key = "errors.forbidden"
	ErrAdminRequired      Key = "errors.adminRequired"
	ErrEventNotFound      Key = "errors.eventNotFound"
	ErrUserNotFound       Key = "errors.userNotFound"
	ErrLocaleNotFound     Key = "errors.localeNotFound"
	ErrInvalidStatus      Key = "errors.invalidStatus"
	ErrInvalidTransition  Key = "errors.invalidTransition"
	ErrSubscriberRequired Key = "errors.subscriberRequired"
	ErrEndBeforeStart     Key = "errors.endBeforeStart"
	ErrInvalidEventID     Key = "errors.invalidEventId"
	ErrNotOwner           Key = "errors.notOwner"
	ErrRateLimited        Key = "errors.rateLimited"
	ErrUploadsDisabled    Key = "errors.uploadsDisabled"
	ErrInvalidUpload      Key = "errors.invalidUpload"
	ErrInternal           Key = "errors.internal"
)

// Presentation strings shared with the web client.
const (
	CommonHome      Key = "common.home"
	CommonAbout     Key = "common.about"
	CommonLogin     Key = "common.login"
	CommonRegister  Key = "common.register"
	CommonDashboard Key = "common.dashboard"
	CommonSearch    Key = "common.search"
	CommonSortBy    Key = "common.sortBy"
	CommonCity      Key = "common.city"
	CommonNewest    Key = "common.newest"
	CommonUpcoming  Key = "common.upcoming"
	CommonPopular   Key = "common.popular"
	CommonAll       Key = "common.all"
	CommonDays      Key = "common.days"
	CommonHours     Key = "common.hours"
	CommonMinutes   Key = "common.minutes"
	CommonSeconds   Key = "common.seconds"
	CommonLogout    Key = "common.logout"

	HomeTitle       Key = "home.title"
	HomeSubtitle    Key = "home.subtitle"
	HomeNoEvents    Key = "home.noEvents"
	HomeSearchHint  Key = "home.searchPlaceholder"
	HomeCityFilter  Key = "home.filterByCity"
	HomeUpcomingTtl Key = "home.upcomingEvents"

	EventStartDate Key = "event.startDate"
	EventEndDate   Key = "event.endDate"
	EventLocation  Key = "event.location"
	EventOrganizer Key = "event.organizer"
	EventCategory  Key = "event.category"
	EventRegister  Key = "event.register"
	EventShare     Key = "event.share"
	EventJoined    Key = "event.joined"

	DashboardMyEvents    Key = "dashboard.myEvents"
	DashboardCreateEvent Key = "dashboard.createEvent"
	DashboardPending     Key = "dashboard.pendingApproval"
	DashboardApproved    Key = "dashboard.approved"
	DashboardRejected    Key = "dashboard.rejected"
	DashboardSubscribers Key = "dashboard.subscribers"
)

// Keys lists every key in a stable order.
var Keys = []Key{
	ErrInvalidRequest, ErrValidation, ErrDuplicateEmail, ErrInvalidCredentials,
	ErrUnauthenticated, ErrInvalidToken, ErrForbidden, ErrAdminRequired,
	ErrEventNotFound, ErrUserNotFound, ErrLocaleNotFound, ErrInvalidStatus,
	ErrInvalidTransition, ErrSubscriberRequired, ErrEndBeforeStart, ErrInvalidEventID,
	ErrNotOwner, ErrRateLimited, ErrUploadsDisabled, ErrInvalidUpload, ErrInternal,

	CommonHome, CommonAbout, CommonLogin, CommonRegister, CommonDashboard, CommonSearch,
	CommonSortBy, CommonCity, CommonNewest, CommonUpcoming, CommonPopular, CommonAll,
	CommonDays, CommonHours, CommonMinutes, CommonSeconds, CommonLogout,

	HomeTitle, HomeSubtitle, HomeNoEvents, HomeSearchHint, HomeCityFilter, HomeUpcomingTtl,

	EventStartDate, EventEndDate, EventLocation, EventOrganizer, EventCategory,
	EventRegister, EventShare, EventJoined,

	DashboardMyEvents, DashboardCreateEvent, DashboardPending, DashboardApproved,
	DashboardRejected, DashboardSubscribers,
}
