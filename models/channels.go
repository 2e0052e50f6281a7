package models

// Channel names as produced by the normalizer. This file is the single
// source of truth for the columns dashboards and derivations rely on.
const (
	ChanTime            = "Time (s)"
	ChanWheelSpeedFRKmh = "Wheel Speed FR (km/h)"
	ChanBrakeFront      = "Brake Pressure Front (kPa)"
	ChanBrakeRear       = "Brake Pressure Rear (kPa)"
	ChanEnginePower     = "Engine Power (kW)"
	ChanEngOilTemp      = "Eng Oil Temp (C)"
	ChanGboxOilTemp     = "Gbox Oil Temp (C)"
	ChanCoolantTemp     = "Coolant Temperature (C)"
)

// Derived channels, appended after the source columns in this order.
const (
	ChanWheelSpeedFRMs = "Wheel Speed FR (m/s)"
	ChanTimeDiff       = "Time Difference (s)"
	ChanDistance       = "Distance Traveled (m)"
	ChanCumDistance    = "Cumulative Distance (m)"
)

// DerivedChannels lists the derived columns in append order.
var DerivedChannels = []string{
	ChanWheelSpeedFRMs,
	ChanTimeDiff,
	ChanDistance,
	ChanCumDistance,
}

// TemperatureChannels are the combustion-variant temperature traces.
var TemperatureChannels = []string{
	ChanEngOilTemp,
	ChanGboxOilTemp,
	ChanCoolantTemp,
}
