// Package ticktick is a thin client for the TickTick open API.
//
// It covers exactly the two calls tickadd needs: fetching the project
// directory and creating a task. Authentication is carried by the
// *http.Client passed in, normally an oauth2 client around the stored
// access token.
package ticktick
