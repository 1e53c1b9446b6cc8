package imposterservice

import "errors"

var (
	// ErrNotEnoughPlayers is returned when a round starts with fewer than
	// three approved guests.
	ErrNotEnoughPlayers = errors.New("at least 3 approved players required")

	// ErrGuestNotApproved is returned when the roster contains a guest the
	// host has not approved.
	ErrGuestNotApproved = errors.New("guest is not approved")

	// ErrWrongRoundState is returned when an operation targets a round in
	// the wrong lifecycle state.
	ErrWrongRoundState = errors.New("round is in the wrong state")

	// ErrNotImposter is returned when a kill is attempted by a crewmate.
	ErrNotImposter = errors.New("only the imposter can eliminate players")

	// ErrOnCooldown is returned when a kill arrives before the cooldown
	// elapses.
	ErrOnCooldown = errors.New("kill cooldown has not elapsed")

	// ErrInvalidTarget is returned when the target is dead, absent, or the
	// actor themself.
	ErrInvalidTarget = errors.New("invalid elimination target")

	// ErrInvalidVerdict is returned for an unknown round verdict.
	ErrInvalidVerdict = errors.New("invalid verdict")

	// ErrInvalidRole is returned for an unknown player role.
	ErrInvalidRole = errors.New("invalid role")

	// ErrUnparsableTime is returned when a natural-language start time
	// cannot be understood.
	ErrUnparsableTime = errors.New("could not parse start time")

	// ErrTimeInPast is returned when a scheduled start resolves to a past
	// moment.
	ErrTimeInPast = errors.New("start time is in the past")
)
