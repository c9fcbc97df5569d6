package service

import "errors"

var (
	// ErrDuplicateActiveTrip is returned when a trip start is requested
	// while one is already active.
	ErrDuplicateActiveTrip = errors.New("an active trip already exists")

	// ErrNoActiveTrip is returned when a trip end is requested with no
	// active trip.
	ErrNoActiveTrip = errors.New("no active trip found")

	// ErrInvalidUserID is returned when the user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidLineID is returned when the transit line ID is empty.
	ErrInvalidLineID = errors.New("invalid transit line id")

	// ErrInvalidRewardID is returned when the reward ID is empty.
	ErrInvalidRewardID = errors.New("invalid reward id")

	// ErrAccountBusy is returned when the per-account settlement lock is
	// held by another writer.
	ErrAccountBusy = errors.New("account is being updated, retry shortly")

	// ErrLineBusy is returned when the per-line rating lock is held by
	// another writer.
	ErrLineBusy = errors.New("line is being updated, retry shortly")

	// ErrInsufficientPoints is returned when an account cannot cover a
	// reward's cost.
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrRewardUnavailable is returned when redeeming an unavailable reward.
	ErrRewardUnavailable = errors.New("reward not available")

	// ErrPremiumRequired is returned when a free account redeems a
	// premium-only reward.
	ErrPremiumRequired = errors.New("premium account required")

	// ErrEmailTaken is returned when signing up with an email already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidSignup is returned when signup fields are missing or malformed.
	ErrInvalidSignup = errors.New("email, password and name are required")

	// ErrCannotFriendSelf is returned when a user friend-requests themselves.
	ErrCannotFriendSelf = errors.New("cannot send a friend request to yourself")

	// ErrFriendRequestExists is returned when a friendship already exists
	// between the two users in either direction.
	ErrFriendRequestExists = errors.New("friend request already exists")

	// ErrFriendRequestNotPending is returned when accepting a request that
	// is not addressed to the caller or not pending.
	ErrFriendRequestNotPending = errors.New("no pending friend request from this user")
)
