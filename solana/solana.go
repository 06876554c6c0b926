package solana

// IsSimulate indicates whether simulation mode is enabled.
// When set, SendTransaction simulates instead of submitting.
var IsSimulate bool
