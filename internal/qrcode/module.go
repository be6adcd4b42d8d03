package qrcode

import "go.uber.org/fx"

// Module provides the confirmation code encoder.
var Module = fx.Provide(func() *Encoder { return NewEncoder(defaultSize, "M") })
