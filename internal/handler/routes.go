package handler

// PetsPrefix is the base path of the public pets API.
// Keep a single source of truth to avoid path drift across handlers and tests.
const PetsPrefix = "/pets"
