package cities

// rawCityNames is the static city directory compiled into the process,
// sorted alphabetically. The upstream data carries a few duplicate entries;
// NewDirectory drops them on load (see Filter for the matching rules).
var rawCityNames = []string{
	"Akron",
	"Albuquerque",
	"Anaheim",
	"Anchorage",
	"Arlington",
	"Atlanta",
	"Aurora",
	"Austin",
	"Bakersfield",
	"Baltimore",
	"Baton Rouge",
	"Boise",
	"Boston",
	"Buffalo",
	"Cape Coral",
	"Chandler",
	"Charlotte",
	"Chesapeake",
	"Chicago",
	"Chula Vista",
	"Cincinnati",
	"Cleveland",
	"Colorado Springs",
	"Columbus",
	"Corpus Christi",
	"Dallas",
	"Denver",
	"Des Moines",
	"Detroit",
	"Durham",
	"El Paso",
	"Fort Lauderdale",
	"Fort Wayne",
	"Fort Worth",
	"Fresno",
	"Garland",
	"Gilbert",
	"Glendale",
	"Grand Rapids",
	"Greensboro",
	"Henderson",
	"Hialeah",
	"Honolulu",
	"Houston",
	"Huntington Beach",
	"Indianapolis",
	"Irvine",
	"Irvine",
	"Irving",
	"Jacksonville",
	"Jersey City",
	"Kansas City",
	"Laredo",
	"Las Vegas",
	"Lexington",
	"Lincoln",
	"Long Beach",
	"Los Angeles",
	"Louisville",
	"Lubbock",
	"Madison",
	"Memphis",
	"Mesa",
	"Miami",
	"Milwaukee",
	"Minneapolis",
	"Nashville",
	"New Orleans",
	"New York",
	"Newark",
	"Norfolk",
	"North Las Vegas",
	"Oakland",
	"Oklahoma City",
	"Omaha",
	"Ontario",
	"Ontario",
	"Orlando",
	"Pembroke Pines",
	"Pembroke Pines",
	"Philadelphia",
	"Phoenix",
	"Pittsburgh",
	"Plano",
	"Portland",
	"Raleigh",
	"Reno",
	"Richmond",
	"Riverside",
	"Sacramento",
	"Saint Paul",
	"San Antonio",
	"San Diego",
	"San Francisco",
	"San Jose",
	"Santa Ana",
	"Scottsdale",
	"Seattle",
	"Spokane",
	"St. Louis",
	"St. Louis",
	"St. Petersburg",
	"Stockton",
	"Tampa",
	"Toledo",
	"Tucson",
	"Tulsa",
	"Virginia Beach",
	"Washington",
	"Wichita",
	"Winston-Salem",
}
