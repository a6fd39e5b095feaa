package pageshot

// Version is the current pageshot release.
const Version = "0.1.0"
