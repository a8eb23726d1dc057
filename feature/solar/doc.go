// Package solar summarizes inverter power telemetry into daily generation,
// per-inverter performance, an hourly profile and headline statistics.
//
// Inverter exports report instantaneous power in kW roughly every five minutes.
// Energy is estimated as the sum of samples divided by SamplesPerHour.
package solar
